package library

import "sync"

// Gate is the maintenance pause flag shared between the reconciler and the
// serving endpoints. Serving operations consult IsPaused at entry and fail
// fast instead of blocking. Instances are injected, not global, so tests
// can run independent gates.
type Gate struct {
	mu     sync.Mutex
	paused bool
}

// NewGate creates a released gate.
func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = true
}

func (g *Gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = false
}

func (g *Gate) IsPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}
