// Package gate provides the per-run human-approval signal that suspends an
// automation run until a reviewer releases it.
package gate

import (
	"context"
	"sync"
)

// Gate is a single-writer-many-waiters boolean signal. It is single-use:
// once signalled it stays signalled for its lifetime and is never reset.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

func newGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Signal marks the gate satisfied. Calling it more than once has no
// additional effect.
func (g *Gate) Signal() {
	g.once.Do(func() { close(g.ch) })
}

// Signalled reports whether the gate has been released.
func (g *Gate) Signalled() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Wait suspends the caller until the gate is signalled or ctx is cancelled.
// There is no timeout by default; a bounded run lifetime must come from the
// caller's context.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Registry keys gates by run ID. Gates are created lazily on first
// reference and live until Release is called by the run registry.
type Registry struct {
	mu    sync.Mutex
	gates map[string]*Gate
}

// NewRegistry creates an empty gate registry.
func NewRegistry() *Registry {
	return &Registry{gates: make(map[string]*Gate)}
}

// For returns the gate for a run, creating it if needed.
func (r *Registry) For(runID string) *Gate {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gates[runID]
	if !ok {
		g = newGate()
		r.gates[runID] = g
	}
	return g
}

// Release removes a run's gate from the registry. Waiters already holding
// the gate keep their reference; the gate itself is never reset.
func (r *Registry) Release(runID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.gates, runID)
}
