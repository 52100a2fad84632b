// Package authwall - heuristics.go holds the page predicates used by the
// gateway. Target sites are third-party and unversioned, so detection is
// heuristic: a locator miss is a negative signal, never an error.
package authwall

import (
	"regexp"
	"strings"

	"github.com/jonathan/apply-agent/internal/browser"
)

var (
	rxLoginWords = regexp.MustCompile(`(?i)(sign\s*in|log\s*in|create\s*account|new\s*user|returning\s*user|register)`)
	rxGuest      = regexp.MustCompile(`(?i)(apply|continue)\s+as\s+guest`)
	rxUploadCV   = regexp.MustCompile(`(?i)(upload|attach).*(resume|résumé|cv)`)
	rxSubmitish  = regexp.MustCompile(`(?i)(submit|apply|next)`)
)

func present(loc browser.Locator) bool {
	n, err := loc.Count()
	return err == nil && n > 0
}

// LooksLikeLoginWall reports whether the page is an authentication wall:
// a password input, visible login vocabulary, or a known vendor login
// route in the URL.
func LooksLikeLoginWall(page browser.Page) bool {
	if present(page.Locator("input[type='password']")) {
		return true
	}
	if present(page.ByText(rxLoginWords)) {
		return true
	}
	return isVendorLoginRoute(page.URL())
}

// isVendorLoginRoute matches known provider-specific login path fragments.
func isVendorLoginRoute(rawURL string) bool {
	u := rawURL
	if strings.Contains(u, "taleo.net/careersection/iam/accessmanagement") {
		return true
	}
	if strings.Contains(u, "icims") && (strings.Contains(u, "login") || strings.Contains(u, "profile.ftl")) {
		return true
	}
	if strings.Contains(u, "myworkdayjobs.com") && strings.Contains(u, "SignIn") {
		return true
	}
	return false
}

// ApplicationReady reports whether an application form appears to be
// displayed: a file-upload control, résumé-upload vocabulary, or a
// submit/apply/next control. The last signal is loose; a "Next" button in
// a multi-step login flow also satisfies it, and the downstream filler
// simply finds nothing to fill in that case.
func ApplicationReady(page browser.Page) bool {
	if present(page.Locator("input[type='file']")) {
		return true
	}
	if present(page.ByText(rxUploadCV)) {
		return true
	}
	return present(page.ByRole("button", rxSubmitish))
}

// TryContinueAsGuest clicks an "apply/continue as guest" control when one
// exists. It reports whether a click happened; click failures count as no.
func TryContinueAsGuest(page browser.Page) bool {
	buttons := page.ByRole("button", nil).FilterByText(rxGuest)
	if present(buttons) {
		if err := buttons.First().Click(); err == nil {
			page.WaitFor(guestSettleDelay)
			return true
		}
		return false
	}
	links := page.ByText(rxGuest)
	if present(links) {
		if err := links.First().Click(); err == nil {
			page.WaitFor(guestSettleDelay)
			return true
		}
	}
	return false
}
