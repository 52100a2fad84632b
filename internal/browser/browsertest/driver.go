package browsertest

import (
	"os"

	"github.com/jonathan/apply-agent/internal/browser"
)

// Context is a fake browser context handing out a prebuilt page.
type Context struct {
	Page           *Page
	SavedStatePath string
	Closed         bool
}

var _ browser.Context = (*Context)(nil)

// NewPage returns the prebuilt page.
func (c *Context) NewPage() (browser.Page, error) { return c.Page, nil }

// SaveStorageState writes a minimal storage-state snapshot so callers can
// assert on the file.
func (c *Context) SaveStorageState(path string) error {
	c.SavedStatePath = path
	return os.WriteFile(path, []byte(`{"cookies":[],"origins":[]}`), 0o644)
}

// Close marks the context closed.
func (c *Context) Close() error {
	c.Closed = true
	return nil
}

// Driver is a fake browser driver serving one context.
type Driver struct {
	Context     *Context
	LastOptions browser.ContextOptions
}

var _ browser.Driver = (*Driver)(nil)

// NewContext records the options and returns the canned context.
func (d *Driver) NewContext(opts browser.ContextOptions) (browser.Context, error) {
	d.LastOptions = opts
	return d.Context, nil
}

// Close is a no-op.
func (d *Driver) Close() error { return nil }
