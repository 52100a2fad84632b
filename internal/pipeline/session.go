// Package pipeline provides the high-level orchestration for an application
// run: tailoring, authentication, form filling, and the human approval gate.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/apply-agent/internal/fill"
	"github.com/jonathan/apply-agent/internal/gate"
	"github.com/jonathan/apply-agent/internal/runbus"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusCreated          Status = "created"
	StatusAuthenticating   Status = "authenticating"
	StatusFilling          Status = "filling"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusFinalizing       Status = "finalizing"
	StatusDone             Status = "done"
	StatusFailed           Status = "failed"
)

// Run is one application attempt against one posting URL. Status moves
// forward only; a run never re-enters an earlier state.
type Run struct {
	ID        string
	URL       string
	Provider  fill.Provider
	CreatedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	status    Status
	updatedAt time.Time
}

// Status returns the run's current lifecycle state.
func (r *Run) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Run) setStatus(s Status) {
	r.mu.Lock()
	r.status = s
	r.updatedAt = time.Now().UTC()
	r.mu.Unlock()
}

// Cancel aborts the run's work. Safe to call at any time.
func (r *Run) Cancel() { r.cancel() }

// Done is closed when the run's goroutine has finished, whatever the outcome.
func (r *Run) Done() <-chan struct{} { return r.done }

// View is the JSON representation of a run returned by the status endpoint.
type View struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Provider  string    `json:"provider"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot captures the run's current state for API responses.
func (r *Run) Snapshot() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return View{
		ID:        r.ID,
		URL:       r.URL,
		Provider:  string(r.Provider),
		Status:    r.status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.updatedAt,
	}
}

// Registry owns the live runs and their per-run resources: the event queue
// on the bus and the approval gate. Releasing a run through the registry is
// the only teardown path for those resources.
type Registry struct {
	bus   *runbus.Bus
	gates *gate.Registry

	mu   sync.Mutex
	runs map[string]*Run
}

// NewRegistry creates a registry over the given bus and gate registry.
func NewRegistry(bus *runbus.Bus, gates *gate.Registry) *Registry {
	return &Registry{bus: bus, gates: gates, runs: make(map[string]*Run)}
}

// Create registers a new run for url and returns it along with the context
// its work must respect. The run starts in StatusCreated.
func (reg *Registry) Create(parent context.Context, url string) (*Run, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.NewString(),
		URL:       url,
		Provider:  fill.Resolve(url),
		CreatedAt: now,
		cancel:    cancel,
		done:      make(chan struct{}),
		status:    StatusCreated,
		updatedAt: now,
	}
	reg.mu.Lock()
	reg.runs[run.ID] = run
	reg.mu.Unlock()
	return run, ctx
}

// Get looks up a run by ID.
func (reg *Registry) Get(id string) (*Run, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	run, ok := reg.runs[id]
	return run, ok
}

// Release cancels the run's work and tears down its bus queue and gate.
// Unknown IDs are a no-op.
func (reg *Registry) Release(id string) {
	reg.mu.Lock()
	run, ok := reg.runs[id]
	delete(reg.runs, id)
	reg.mu.Unlock()
	if !ok {
		return
	}
	run.cancel()
	reg.bus.Drop(id)
	reg.gates.Release(id)
}

// Shutdown cancels every live run, waits for their goroutines to exit, and
// releases their resources. Returns the context error when the wait is cut
// short.
func (reg *Registry) Shutdown(ctx context.Context) error {
	reg.mu.Lock()
	runs := make([]*Run, 0, len(reg.runs))
	for _, run := range reg.runs {
		runs = append(runs, run)
	}
	reg.mu.Unlock()

	g, gCtx := errgroup.WithContext(ctx)
	for _, run := range runs {
		run := run
		g.Go(func() error {
			run.cancel()
			select {
			case <-run.done:
				return nil
			case <-gCtx.Done():
				return gCtx.Err()
			}
		})
	}
	err := g.Wait()
	for _, run := range runs {
		reg.Release(run.ID)
	}
	return err
}
