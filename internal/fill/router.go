// Package fill - router.go resolves which provider strategy applies to a
// URL. Providers form a closed set dispatched through an explicit match,
// with a generic fallback that matches unconditionally, so resolution is
// total and deterministic.
package fill

import (
	"net/url"
	"strings"
)

// Provider is an ATS vendor with a dedicated filling strategy.
type Provider string

const (
	// ProviderGreenhouse matches Greenhouse-hosted job boards
	ProviderGreenhouse Provider = "greenhouse"
	// ProviderLever matches Lever job sites
	ProviderLever Provider = "lever"
	// ProviderWorkday matches Workday-hosted career portals
	ProviderWorkday Provider = "workday"
	// ProviderAshby matches Ashby job boards
	ProviderAshby Provider = "ashby"
	// ProviderICIMS matches iCIMS career portals
	ProviderICIMS Provider = "icims"
	// ProviderTaleo matches Oracle Taleo career sections
	ProviderTaleo Provider = "taleo"
	// ProviderGeneric matches any URL and is always tried last
	ProviderGeneric Provider = "generic"
)

// providerOrder fixes the resolution priority: vendor-specific predicates
// first, generic last.
var providerOrder = []Provider{
	ProviderGreenhouse,
	ProviderLever,
	ProviderWorkday,
	ProviderAshby,
	ProviderICIMS,
	ProviderTaleo,
	ProviderGeneric,
}

// Providers returns the resolution order, generic included.
func Providers() []Provider {
	out := make([]Provider, len(providerOrder))
	copy(out, providerOrder)
	return out
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

// Matches reports whether the provider's hostname predicate accepts the URL.
func (p Provider) Matches(rawURL string) bool {
	host := hostOf(rawURL)
	switch p {
	case ProviderGreenhouse:
		return strings.Contains(host, "greenhouse.io")
	case ProviderLever:
		return strings.Contains(host, "lever.co")
	case ProviderWorkday:
		return strings.Contains(host, "myworkdayjobs.com") || strings.Contains(host, ".wd")
	case ProviderAshby:
		return strings.Contains(host, "ashbyhq.com")
	case ProviderICIMS:
		return strings.Contains(host, "icims.com")
	case ProviderTaleo:
		return strings.Contains(host, "taleo.net")
	case ProviderGeneric:
		return true
	}
	return false
}

// Resolve selects the first provider whose predicate matches the URL.
// The generic provider matches everything, so resolution never fails.
func Resolve(rawURL string) Provider {
	for _, p := range providerOrder {
		if p.Matches(rawURL) {
			return p
		}
	}
	return ProviderGeneric
}
