// Package fill - fields.go populates plain text fields from the canonical
// answer set: accessible-label lookup first, then visible text resolved to
// an input inside the same structural container.
package fill

import (
	"regexp"

	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/types"
)

// FieldFill records the outcome of one logical field for logging.
type FieldFill struct {
	Field   string
	Outcome Outcome
}

// FillTextField fills one logical field identified by its label patterns.
// Empty values are skipped so an existing form value is never cleared.
func FillTextField(page browser.Page, patterns []*regexp.Regexp, value string) Outcome {
	if value == "" {
		return OutcomeNoMatch
	}

	// Prefer the platform's accessible-label association.
	for _, pat := range patterns {
		labelled := page.ByLabel(pat)
		n, err := labelled.Count()
		if err != nil || n == 0 {
			continue
		}
		if err := labelled.First().Fill(value); err == nil {
			return OutcomeApplied
		}
	}

	// Fallback: visible label text, then a plain input inside the nearest
	// div/section/fieldset ancestor.
	result := OutcomeNoMatch
	for _, pat := range patterns {
		texts := page.ByText(pat)
		n, err := texts.Count()
		if err != nil {
			continue
		}
		if n > maxTextFallbackMatches {
			n = maxTextFallbackMatches
		}
		for i := 0; i < n; i++ {
			input := texts.Nth(i).Locator(selAncestorContainer).Locator(selPlainInputs)
			if cnt, err := input.Count(); err != nil || cnt == 0 {
				continue
			}
			if err := input.First().Fill(value); err != nil {
				result = OutcomeFailed
				continue
			}
			return OutcomeApplied
		}
	}
	return result
}

// FillProfileFields populates every logical profile field present on the
// page, including the optional links, and returns the per-field outcomes.
func FillProfileFields(page browser.Page, a types.ApplicantAnswers) []FieldFill {
	a = a.Normalize()
	fields := []struct {
		name     string
		patterns []*regexp.Regexp
		value    string
	}{
		{"full_name", labelsFullName, a.FullName},
		{"first_name", labelsFirst, a.FirstName},
		{"last_name", labelsLast, a.LastName},
		{"email", labelsEmail, a.Email},
		{"phone", labelsPhone, a.Phone},
		{"city", labelsCity, a.City},
		{"state", labelsState, a.State},
		{"linkedin", labelsLinkedIn, a.LinkedIn},
		{"website", labelsWebsite, a.Website},
		{"github", labelsGitHub, a.GitHub},
	}

	results := make([]FieldFill, 0, len(fields))
	for _, f := range fields {
		results = append(results, FieldFill{Field: f.name, Outcome: FillTextField(page, f.patterns, f.value)})
	}
	return results
}
