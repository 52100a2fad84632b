package authwall

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-agent/internal/authstate"
	"github.com/jonathan/apply-agent/internal/browser/browsertest"
	"github.com/jonathan/apply-agent/internal/runbus"
)

func newTestGateway(t *testing.T, bus *runbus.Bus) (*Gateway, *authstate.Store) {
	t.Helper()
	store, err := authstate.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewGateway(store, bus, time.Millisecond, 3), store
}

// drainEvents collects everything currently queued for the run.
func drainEvents(t *testing.T, bus *runbus.Bus, runID string) []runbus.Envelope {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var out []runbus.Envelope
	for frame := range bus.Stream(ctx, runID) {
		raw := strings.TrimSpace(strings.TrimPrefix(string(frame), "data: "))
		var env runbus.Envelope
		require.NoError(t, json.Unmarshal([]byte(raw), &env))
		out = append(out, env)
	}
	return out
}

func countType(events []runbus.Envelope, eventType string) int {
	n := 0
	for _, e := range events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func TestEnsure_ReadyPageSavesStateWithoutGate(t *testing.T) {
	bus := runbus.New()
	gw, store := newTestGateway(t, bus)

	page := browsertest.NewPage("", browsertest.Input("file", "Resume"))
	driver := &browsertest.Driver{Context: &browsertest.Context{Page: page}}

	applyURL := "https://boards.greenhouse.io/acme/jobs/1"
	res, err := gw.Ensure(context.Background(), driver, applyURL, "run-1")
	require.NoError(t, err)

	assert.Equal(t, PhaseReady, res.Phase)
	assert.Equal(t, ProviderGreenhouse, res.Provider)
	assert.NotEmpty(t, store.SeedPath(applyURL), "storage state should be persisted")
	assert.Zero(t, countType(drainEvents(t, bus, "run-1"), runbus.TypeAuthGate))
}

func TestEnsure_LoginWallEmitsExactlyOneAuthGate(t *testing.T) {
	bus := runbus.New()
	gw, store := newTestGateway(t, bus)

	page := browsertest.NewPage("",
		browsertest.Input("password", "Password"),
		browsertest.TextEl("Sign in to your account"),
	)
	driver := &browsertest.Driver{Context: &browsertest.Context{Page: page}}

	applyURL := "https://acme.wd5.myworkdayjobs.com/careers/jobs/1"
	res, err := gw.Ensure(context.Background(), driver, applyURL, "run-1")
	require.NoError(t, err)

	// The poll ceiling elapsed without readiness: soft failure, page handed
	// back as-is, nothing persisted.
	assert.Equal(t, PhaseAwaitingManual, res.Phase)
	assert.Equal(t, ProviderWorkday, res.Provider)
	assert.Empty(t, store.SeedPath(applyURL))

	events := drainEvents(t, bus, "run-1")
	assert.Equal(t, 1, countType(events, runbus.TypeAuthGate))
}

func TestEnsure_GuestContinuationReachesReady(t *testing.T) {
	bus := runbus.New()
	gw, _ := newTestGateway(t, bus)

	guest := browsertest.Button("Continue as guest")
	guest.OnClick = func(p *browsertest.Page) {
		p.Root.Children = nil
		p.Append(browsertest.Input("file", "Resume"))
	}
	page := browsertest.NewPage("",
		browsertest.TextEl("Sign in or continue below"),
		guest,
	)
	driver := &browsertest.Driver{Context: &browsertest.Context{Page: page}}

	res, err := gw.Ensure(context.Background(), driver, "https://jobs.lever.co/acme/1", "run-1")
	require.NoError(t, err)

	assert.Equal(t, PhaseReady, res.Phase)
	assert.True(t, guest.Clicked)
	assert.Zero(t, countType(drainEvents(t, bus, "run-1"), runbus.TypeAuthGate))
}

func TestEnsure_SeedsContextFromPersistedState(t *testing.T) {
	bus := runbus.New()
	gw, store := newTestGateway(t, bus)

	applyURL := "https://boards.greenhouse.io/acme/jobs/1"
	seedCtx := &browsertest.Context{Page: browsertest.NewPage("")}
	require.NoError(t, store.Save(seedCtx, applyURL))

	page := browsertest.NewPage("", browsertest.Input("file", "Resume"))
	driver := &browsertest.Driver{Context: &browsertest.Context{Page: page}}

	_, err := gw.Ensure(context.Background(), driver, applyURL, "run-1")
	require.NoError(t, err)
	assert.Equal(t, store.PathFor(applyURL), driver.LastOptions.StorageStatePath)
}

func TestEnsure_FreshOriginGetsNoSeed(t *testing.T) {
	bus := runbus.New()
	gw, _ := newTestGateway(t, bus)

	page := browsertest.NewPage("", browsertest.Input("file", "Resume"))
	driver := &browsertest.Driver{Context: &browsertest.Context{Page: page}}

	_, err := gw.Ensure(context.Background(), driver, "https://boards.greenhouse.io/acme/jobs/1", "run-1")
	require.NoError(t, err)
	assert.Empty(t, driver.LastOptions.StorageStatePath)
}

func TestEnsure_CancellationInterruptsManualWait(t *testing.T) {
	bus := runbus.New()
	store, err := authstate.NewStore(t.TempDir())
	require.NoError(t, err)
	gw := NewGateway(store, bus, 10*time.Millisecond, DefaultMaxAttempts)

	page := browsertest.NewPage("", browsertest.Input("password", "Password"))
	driver := &browsertest.Driver{Context: &browsertest.Context{Page: page}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = gw.Ensure(ctx, driver, "https://example.com/apply", "run-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
