// Package browser defines the automation driver contract the run
// orchestration core is written against, plus its Playwright-backed
// implementation. The core only depends on the capability set below:
// navigation, label/text/role lookup, fill, click, screenshots, and
// storage-state persistence.
package browser

import (
	"regexp"
	"time"
)

// Locator references zero or more elements matched on the live page.
// Operations that act on an element target the first match.
type Locator interface {
	// Count returns the number of matched elements.
	Count() (int, error)
	// First narrows the locator to its first match.
	First() Locator
	// Nth narrows the locator to its i-th match (zero-based).
	Nth(i int) Locator
	// InnerText returns the rendered text of the first match.
	InnerText() (string, error)
	// Fill replaces the value of the first matched input or textarea.
	Fill(value string) error
	// Click clicks the first match.
	Click() error
	// SetInputFiles sets the given file on the first matched file input.
	SetInputFiles(path string) error
	// SelectOptionByLabel selects the first <select> option whose label
	// matches rx. It reports whether an option matched.
	SelectOptionByLabel(rx *regexp.Regexp) (bool, error)
	// Locator resolves a CSS or XPath selector relative to this locator.
	Locator(selector string) Locator
	// FilterByText narrows to matches whose text contains a match of rx.
	FilterByText(rx *regexp.Regexp) Locator
}

// Page is one open page inside a browser context.
type Page interface {
	// URL returns the page's current URL.
	URL() string
	// Goto navigates to url and waits for DOM content to load.
	Goto(url string) error
	// Locator resolves a CSS or XPath selector on the page.
	Locator(selector string) Locator
	// ByLabel locates form controls by their accessible label.
	ByLabel(rx *regexp.Regexp) Locator
	// ByText locates elements by visible text.
	ByText(rx *regexp.Regexp) Locator
	// ByRole locates elements by structural role ("button", "link", ...).
	// A nil name matches any accessible name.
	ByRole(role string, name *regexp.Regexp) Locator
	// Screenshot captures a full-page screenshot to the given file.
	Screenshot(path string) error
	// WaitFor lets the page settle for the given duration.
	WaitFor(d time.Duration)
	// Close closes the page.
	Close() error
}

// ContextOptions configures a new browser context.
type ContextOptions struct {
	// StorageStatePath seeds the context with persisted session state.
	// Empty, or pointing at a missing file, yields a fresh context.
	StorageStatePath string
}

// Context is one isolated browser context. Each run owns exactly one
// context; contexts are never shared or pooled across runs.
type Context interface {
	NewPage() (Page, error)
	// SaveStorageState persists the context's cookies and local storage
	// to path, overwriting any previous snapshot.
	SaveStorageState(path string) error
	Close() error
}

// Driver launches browser contexts. Implementations must interrupt
// outstanding operations cleanly when a context is closed.
type Driver interface {
	NewContext(opts ContextOptions) (Context, error)
	Close() error
}
