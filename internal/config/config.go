// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults applied when the environment leaves a value unset.
const (
	DefaultPort         = 8000
	DefaultAuthDir      = "./auth"
	DefaultFilesDir     = "./files"
	DefaultPollInterval = time.Second
	DefaultMaxAttempts  = 600
)

// Config holds everything the process needs. All values can come from the
// environment; a .env file is loaded by the CLI before this is read.
type Config struct {
	// Port is the HTTP listen port.
	Port int
	// AuthDir stores per-origin browser storage-state snapshots.
	AuthDir string
	// FilesDir stores run artifacts: screenshots and tailored resumes.
	FilesDir string
	// PollInterval is the delay between auth-readiness checks.
	PollInterval time.Duration
	// MaxPollAttempts bounds the manual-auth wait.
	MaxPollAttempts int
	// GeminiAPIKey enables resume tailoring when set.
	GeminiAPIKey string
	// GeminiModel overrides the default tailoring model.
	GeminiModel string
	// Headless controls browser visibility. Runs that need manual sign-in
	// want a headed browser.
	Headless bool
	// ScrapeWithBrowser enables headless rendering for SPA job boards.
	ScrapeWithBrowser bool
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset.
func FromEnv() *Config {
	return &Config{
		Port:              envInt("PORT", DefaultPort),
		AuthDir:           envStr("AUTH_DIR", DefaultAuthDir),
		FilesDir:          envStr("FILES_DIR", DefaultFilesDir),
		PollInterval:      time.Duration(envInt("AUTH_POLL_INTERVAL_SECONDS", 1)) * time.Second,
		MaxPollAttempts:   envInt("AUTH_POLL_MAX_ATTEMPTS", DefaultMaxAttempts),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		Headless:          envBool("HEADLESS", false),
		ScrapeWithBrowser: envBool("SCRAPE_WITH_BROWSER", true),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: invalid port %d", c.Port)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("config error: poll interval must be positive")
	}
	if c.MaxPollAttempts <= 0 {
		return fmt.Errorf("config error: max poll attempts must be positive")
	}
	if c.AuthDir == "" {
		return fmt.Errorf("config error: auth dir is empty")
	}
	if c.FilesDir == "" {
		return fmt.Errorf("config error: files dir is empty")
	}
	return nil
}

// EnsureDirs creates the artifact directories if missing.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.AuthDir, c.FilesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
