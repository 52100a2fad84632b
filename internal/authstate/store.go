// Package authstate persists per-origin browser session state so re-runs
// against the same host can skip re-login.
package authstate

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps one storage-state snapshot per hostname under a directory,
// as auth/<hostname>.json. Saves overwrite; loads fail open.
type Store struct {
	dir string
}

// NewStore creates the snapshot directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("auth state directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create auth state directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Host extracts the lowercase hostname from a URL. Unparseable URLs yield
// an empty host, which the store treats as "no snapshot".
func Host(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

// PathFor returns the snapshot file path for the URL's origin. At most one
// snapshot exists per hostname.
func (s *Store) PathFor(rawURL string) string {
	h := Host(rawURL)
	if h == "" {
		return ""
	}
	return filepath.Join(s.dir, h+".json")
}

// SeedPath returns the path of a usable snapshot for the URL's origin, or
// empty when none exists or the stored state is corrupt. Stale or
// unreadable snapshots are treated as absent, never as an error.
func (s *Store) SeedPath(rawURL string) string {
	path := s.PathFor(rawURL)
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if !json.Valid(data) {
		return ""
	}
	return path
}

// Saver persists storage state to a file; satisfied by browser contexts.
type Saver interface {
	SaveStorageState(path string) error
}

// Save overwrites the origin's snapshot with the context's current state.
// Saving is idempotent per origin.
func (s *Store) Save(ctx Saver, rawURL string) error {
	path := s.PathFor(rawURL)
	if path == "" {
		return fmt.Errorf("cannot derive host from url %q", rawURL)
	}
	if err := ctx.SaveStorageState(path); err != nil {
		return fmt.Errorf("failed to persist auth state for %s: %w", Host(rawURL), err)
	}
	return nil
}
