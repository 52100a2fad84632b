// Package authwall - gateway.go runs the authentication phase machine for
// one run, from initial detection through guest continuation and manual
// sign-in to readiness.
package authwall

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/apply-agent/internal/authstate"
	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/runbus"
)

// Phase is a state of the authentication machine.
type Phase string

const (
	// PhaseInitial is the starting phase before any detection ran
	PhaseInitial Phase = "initial"
	// PhaseLoginWall means the login-wall heuristic matched
	PhaseLoginWall Phase = "login_wall_detected"
	// PhaseGuestAttempted means a guest-continuation control was clicked
	PhaseGuestAttempted Phase = "guest_attempted"
	// PhaseAwaitingManual means the run paused for manual sign-in
	PhaseAwaitingManual Phase = "awaiting_manual_auth"
	// PhaseReady is the terminal phase: the application form is displayed
	PhaseReady Phase = "ready"
)

// Defaults for the bounded readiness poll: 1 second × 600 attempts.
const (
	DefaultPollInterval = time.Second
	DefaultMaxAttempts  = 600
)

const guestSettleDelay = 600 * time.Millisecond

const manualAuthInstructions = "Please sign in / create an account in the browser window. " +
	"Complete any 2FA or SSO. When you land on the application form, the run resumes automatically."

// Gateway detects and navigates authentication walls.
type Gateway struct {
	store        *authstate.Store
	bus          *runbus.Bus
	pollInterval time.Duration
	maxAttempts  int
}

// NewGateway builds a gateway over the given session store and event bus.
// Non-positive interval or attempts fall back to the defaults.
func NewGateway(store *authstate.Store, bus *runbus.Bus, pollInterval time.Duration, maxAttempts int) *Gateway {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Gateway{store: store, bus: bus, pollInterval: pollInterval, maxAttempts: maxAttempts}
}

// Result is the outcome of an Ensure call. The page is returned even when
// readiness was never confirmed (Phase != PhaseReady); the caller proceeds
// and the filler finds nothing to fill on a page that is still walled.
type Result struct {
	Context  browser.Context
	Page     browser.Page
	Phase    Phase
	Provider Provider
}

// Ensure opens a context seeded with any persisted session state for the
// target origin, navigates to applyURL, and works the phase machine until
// the application form is ready or the bounded manual-auth wait elapses.
// Only navigation and context setup return errors; everything else is a
// heuristic with a forward path.
func (g *Gateway) Ensure(ctx context.Context, driver browser.Driver, applyURL, runID string) (*Result, error) {
	bctx, err := driver.NewContext(browser.ContextOptions{
		StorageStatePath: g.store.SeedPath(applyURL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.Goto(applyURL); err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", applyURL, err)
	}

	res := &Result{Context: bctx, Page: page, Phase: PhaseInitial, Provider: InferProvider(applyURL)}

	if LooksLikeLoginWall(page) {
		res.Phase = PhaseLoginWall
		res.Provider = InferProvider(page.URL())

		if TryContinueAsGuest(page) {
			res.Phase = PhaseGuestAttempted
			g.log(runID, runbus.LevelInfo, "Clicked 'Continue as guest'")
		}

		if LooksLikeLoginWall(page) {
			res.Phase = PhaseAwaitingManual
			g.bus.Emit(runID, runbus.AuthGate(string(res.Provider), page.URL(), manualAuthInstructions))
			if err := g.pollUntilReady(ctx, page); err != nil {
				_ = bctx.Close()
				return nil, err
			}
		}
	}

	if ApplicationReady(page) {
		if err := g.store.Save(bctx, applyURL); err != nil {
			g.log(runID, runbus.LevelWarn, fmt.Sprintf("Could not persist auth state: %v", err))
		} else {
			g.log(runID, runbus.LevelInfo, fmt.Sprintf("Authenticated on %s; storage state saved.", authstate.Host(applyURL)))
		}
		res.Phase = PhaseReady
		return res, nil
	}

	// Soft failure: the poll ceiling was reached (or detection is simply
	// wrong). Return the page in its current state rather than killing the
	// run.
	g.log(runID, runbus.LevelWarn, "Still on login wall; proceeding anyway. The filler will no-op if nothing matches.")
	return res, nil
}

// pollUntilReady re-evaluates the readiness heuristic at a fixed interval
// up to the configured ceiling. Cancellation interrupts the wait promptly;
// exhausting the ceiling is not an error.
func (g *Gateway) pollUntilReady(ctx context.Context, page browser.Page) error {
	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if ApplicationReady(page) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (g *Gateway) log(runID, level, message string) {
	g.bus.Emit(runID, runbus.Log(level, message))
}
