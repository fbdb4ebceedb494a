package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsAndStops(t *testing.T) {
	var runs atomic.Int64

	s := New()
	s.Add("counter", 10*time.Millisecond, func() {
		runs.Add(1)
	})
	s.Start()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}
