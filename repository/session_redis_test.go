package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionTTL(t *testing.T) {
	now := time.Now()

	assert.Equal(t, time.Hour, sessionTTL(now.Add(time.Hour), now))

	// Already-expired sessions still get stored for a moment so the first
	// validate distinguishes expired from never-existed.
	assert.Equal(t, time.Second, sessionTTL(now, now))
	assert.Equal(t, time.Second, sessionTTL(now.Add(-time.Minute), now))
}
