package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-agent/internal/fill"
	"github.com/jonathan/apply-agent/internal/gate"
	"github.com/jonathan/apply-agent/internal/runbus"
)

func TestRegistryCreateAndGet(t *testing.T) {
	reg := NewRegistry(runbus.New(), gate.NewRegistry())

	run, runCtx := reg.Create(context.Background(), "https://boards.greenhouse.io/acme/jobs/1")
	require.NotEmpty(t, run.ID)
	assert.Equal(t, StatusCreated, run.Status())
	assert.Equal(t, fill.ProviderGreenhouse, run.Provider)
	assert.NoError(t, runCtx.Err())

	got, ok := reg.Get(run.ID)
	require.True(t, ok)
	assert.Same(t, run, got)

	_, ok = reg.Get("unknown")
	assert.False(t, ok)
}

func TestRunIDsAreUnique(t *testing.T) {
	reg := NewRegistry(runbus.New(), gate.NewRegistry())
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		run, _ := reg.Create(context.Background(), "https://example.com")
		assert.False(t, seen[run.ID])
		seen[run.ID] = true
	}
}

func TestRegistryReleaseTearsDownResources(t *testing.T) {
	bus := runbus.New()
	gates := gate.NewRegistry()
	reg := NewRegistry(bus, gates)

	run, runCtx := reg.Create(context.Background(), "https://example.com")
	g := gates.For(run.ID)

	streamCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	stream := bus.Stream(streamCtx, run.ID)

	reg.Release(run.ID)

	_, ok := reg.Get(run.ID)
	assert.False(t, ok)
	assert.Error(t, runCtx.Err(), "run context should be cancelled")

	select {
	case _, open := <-stream:
		assert.False(t, open, "bus stream should close on release")
	case <-time.After(time.Second):
		t.Fatal("stream did not close")
	}

	// The released gate stays usable for old references but is forgotten.
	g.Signal()
	assert.False(t, gates.For(run.ID).Signalled())
}

func TestRegistryReleaseUnknownIsNoOp(t *testing.T) {
	reg := NewRegistry(runbus.New(), gate.NewRegistry())
	reg.Release("does-not-exist")
}

func TestSnapshotReflectsStatus(t *testing.T) {
	reg := NewRegistry(runbus.New(), gate.NewRegistry())
	run, _ := reg.Create(context.Background(), "https://jobs.lever.co/acme/1")

	view := run.Snapshot()
	assert.Equal(t, run.ID, view.ID)
	assert.Equal(t, "lever", view.Provider)
	assert.Equal(t, StatusCreated, view.Status)
	assert.False(t, view.CreatedAt.IsZero())

	run.setStatus(StatusFilling)
	view = run.Snapshot()
	assert.Equal(t, StatusFilling, view.Status)
	assert.False(t, view.UpdatedAt.Before(view.CreatedAt))
}
