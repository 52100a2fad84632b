// Package browser - playwright.go implements the driver contract on playwright-go.
package browser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Viewport used for all automation contexts.
const (
	viewportWidth  = 1280
	viewportHeight = 860
)

// actionTimeout bounds individual locator operations. Heuristic fills are
// best-effort, so a short timeout keeps misses cheap.
const actionTimeout = 5000.0

// PlaywrightDriver drives a Chromium instance through Playwright.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// LaunchOptions configures the Playwright driver.
type LaunchOptions struct {
	Headless bool
}

// Launch installs (if needed) and starts Playwright, then launches a
// Chromium browser shared by all contexts created from this driver.
func Launch(opts LaunchOptions) (*PlaywrightDriver, error) {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	br, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return &PlaywrightDriver{pw: pw, browser: br}, nil
}

// NewContext creates an isolated browser context, seeded with persisted
// storage state when the options name an existing snapshot file.
func (d *PlaywrightDriver) NewContext(opts ContextOptions) (Context, error) {
	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: viewportWidth, Height: viewportHeight},
	}
	if opts.StorageStatePath != "" {
		if _, err := os.Stat(opts.StorageStatePath); err == nil {
			ctxOpts.StorageStatePath = playwright.String(opts.StorageStatePath)
		}
	}
	ctx, err := d.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	return &pwContext{ctx: ctx}, nil
}

// Close shuts down the browser and the Playwright runtime.
func (d *PlaywrightDriver) Close() error {
	if err := d.browser.Close(); err != nil {
		_ = d.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return d.pw.Stop()
}

type pwContext struct {
	ctx playwright.BrowserContext
}

func (c *pwContext) NewPage() (Page, error) {
	page, err := c.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(actionTimeout)
	return &pwPage{page: page}, nil
}

func (c *pwContext) SaveStorageState(path string) error {
	if _, err := c.ctx.StorageState(path); err != nil {
		return fmt.Errorf("failed to save storage state: %w", err)
	}
	return nil
}

func (c *pwContext) Close() error {
	return c.ctx.Close()
}

type pwPage struct {
	page playwright.Page
}

func (p *pwPage) URL() string { return p.page.URL() }

func (p *pwPage) Goto(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (p *pwPage) Locator(selector string) Locator {
	return &pwLocator{loc: p.page.Locator(selector)}
}

func (p *pwPage) ByLabel(rx *regexp.Regexp) Locator {
	return &pwLocator{loc: p.page.GetByLabel(rx)}
}

func (p *pwPage) ByText(rx *regexp.Regexp) Locator {
	return &pwLocator{loc: p.page.GetByText(rx)}
}

func (p *pwPage) ByRole(role string, name *regexp.Regexp) Locator {
	opts := playwright.PageGetByRoleOptions{}
	if name != nil {
		opts.Name = name
	}
	return &pwLocator{loc: p.page.GetByRole(playwright.AriaRole(role), opts)}
}

func (p *pwPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}
	return nil
}

func (p *pwPage) WaitFor(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

func (p *pwPage) Close() error { return p.page.Close() }

type pwLocator struct {
	loc playwright.Locator
}

func (l *pwLocator) Count() (int, error) { return l.loc.Count() }

func (l *pwLocator) First() Locator { return &pwLocator{loc: l.loc.First()} }

func (l *pwLocator) Nth(i int) Locator { return &pwLocator{loc: l.loc.Nth(i)} }

func (l *pwLocator) InnerText() (string, error) { return l.loc.InnerText() }

func (l *pwLocator) Fill(value string) error { return l.loc.Fill(value) }

func (l *pwLocator) Click() error { return l.loc.Click() }

func (l *pwLocator) SetInputFiles(path string) error {
	return l.loc.SetInputFiles(path)
}

// SelectOptionByLabel enumerates the select's options and picks the first
// whose label matches rx. Playwright's SelectOption wants exact labels, so
// the regex match happens here.
func (l *pwLocator) SelectOptionByLabel(rx *regexp.Regexp) (bool, error) {
	options := l.loc.Locator("option")
	n, err := options.Count()
	if err != nil {
		return false, err
	}
	for i := 0; i < n; i++ {
		label, err := options.Nth(i).InnerText()
		if err != nil {
			continue
		}
		if rx.MatchString(label) {
			_, err := l.loc.SelectOption(playwright.SelectOptionValues{
				Labels: playwright.StringSlice(label),
			})
			if err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (l *pwLocator) Locator(selector string) Locator {
	return &pwLocator{loc: l.loc.Locator(selector)}
}

func (l *pwLocator) FilterByText(rx *regexp.Regexp) Locator {
	return &pwLocator{loc: l.loc.Filter(playwright.LocatorFilterOptions{HasText: rx})}
}
