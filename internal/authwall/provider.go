// Package authwall detects login walls on third-party career sites,
// attempts unattended bypass, and otherwise pauses the run for manual
// sign-in before confirming the application form is ready.
package authwall

import (
	"net/url"
	"strings"
)

// Provider identifies the ATS vendor inferred from a hostname. It is only
// used to name the portal in gate events; filling strategies resolve their
// own provider from the URL.
type Provider string

const (
	// ProviderWorkday is a Workday-hosted career portal
	ProviderWorkday Provider = "workday"
	// ProviderTaleo is a Taleo/Oracle career section
	ProviderTaleo Provider = "taleo"
	// ProviderICIMS is an iCIMS-hosted portal
	ProviderICIMS Provider = "icims"
	// ProviderLever is a Lever job site
	ProviderLever Provider = "lever"
	// ProviderGreenhouse is a Greenhouse job board
	ProviderGreenhouse Provider = "greenhouse"
	// ProviderAshby is an Ashby job board
	ProviderAshby Provider = "ashby"
	// ProviderGeneric is an unrecognized portal
	ProviderGeneric Provider = "generic"
)

// InferProvider identifies the portal vendor from a URL's hostname.
func InferProvider(rawURL string) Provider {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ProviderGeneric
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "myworkdayjobs.com") || strings.Contains(host, ".wd"):
		return ProviderWorkday
	case strings.Contains(host, "taleo.net") || strings.Contains(host, "oraclecloud"):
		return ProviderTaleo
	case strings.Contains(host, "icims.com"):
		return ProviderICIMS
	case strings.Contains(host, "lever.co"):
		return ProviderLever
	case strings.Contains(host, "greenhouse.io"):
		return ProviderGreenhouse
	case strings.Contains(host, "ashbyhq.com"):
		return ProviderAshby
	}
	return ProviderGeneric
}
