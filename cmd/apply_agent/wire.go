package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/apply-agent/internal/authstate"
	"github.com/jonathan/apply-agent/internal/authwall"
	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/config"
	"github.com/jonathan/apply-agent/internal/gate"
	"github.com/jonathan/apply-agent/internal/ingest"
	"github.com/jonathan/apply-agent/internal/pipeline"
	"github.com/jonathan/apply-agent/internal/runbus"
	"github.com/jonathan/apply-agent/internal/tailor"
)

// buildOrchestrator wires the orchestrator from configuration: browser
// driver, auth-state store, gateway, event bus, gates, run registry, and the
// tailoring client when an API key is configured. The returned cleanup
// releases the browser and the tailoring client.
func buildOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, nil, err
	}

	store, err := authstate.NewStore(cfg.AuthDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open auth-state store: %w", err)
	}

	driver, err := browser.Launch(browser.LaunchOptions{Headless: cfg.Headless})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	var tc tailor.Client
	if cfg.GeminiAPIKey != "" {
		tc, err = tailor.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			_ = driver.Close()
			return nil, nil, fmt.Errorf("failed to create tailoring client: %w", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set; resume tailoring disabled")
	}

	bus := runbus.New()
	gates := gate.NewRegistry()
	orch := &pipeline.Orchestrator{
		Runs:     pipeline.NewRegistry(bus, gates),
		Bus:      bus,
		Gates:    gates,
		Driver:   driver,
		Gateway:  authwall.NewGateway(store, bus, cfg.PollInterval, cfg.MaxPollAttempts),
		Tailor:   tc,
		FilesDir: cfg.FilesDir,
		Scrape: &ingest.Options{
			Timeout:    ingest.DefaultTimeout,
			UserAgent:  ingest.DefaultUserAgent,
			UseBrowser: cfg.ScrapeWithBrowser,
		},
	}

	cleanup := func() {
		if tc != nil {
			_ = tc.Close()
		}
		_ = driver.Close()
	}
	return orch, cleanup, nil
}
