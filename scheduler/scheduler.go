// Package scheduler runs named background jobs on fixed intervals. Jobs are
// plain closures; the scheduled logic never knows it is scheduled.
package scheduler

import (
	"sync"
	"time"

	"sharefm/logger"
)

type job struct {
	name     string
	interval time.Duration
	run      func()
}

// Scheduler owns a set of periodic jobs. It is composed at the top level of
// the service and injected into nothing.
type Scheduler struct {
	jobs []job
	done chan struct{}
	wg   sync.WaitGroup
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{done: make(chan struct{})}
}

// Add registers a job. Must be called before Start.
func (s *Scheduler) Add(name string, interval time.Duration, run func()) {
	s.jobs = append(s.jobs, job{name: name, interval: interval, run: run})
}

// Start launches one goroutine per job.
func (s *Scheduler) Start() {
	for _, j := range s.jobs {
		s.wg.Add(1)
		go func(j job) {
			defer s.wg.Done()
			ticker := time.NewTicker(j.interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					j.run()
				case <-s.done:
					return
				}
			}
		}(j)
		logger.Info("background job scheduled", logger.String("job", j.name), logger.Duration("interval", j.interval))
	}
}

// Stop ends all jobs and waits for them to exit. A job mid-run finishes.
func (s *Scheduler) Stop() {
	close(s.done)
	s.wg.Wait()
}
