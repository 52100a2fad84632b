// Package types - tailored.go defines the result shape returned by the
// resume-tailoring collaborator.
package types

import "encoding/json"

// TailorResult is the structured outcome of one tailoring call. When the
// collaborator fails, callers receive a degraded result (Degraded=true)
// rather than an error.
type TailorResult struct {
	TailoredResume         json.RawMessage `json:"tailored_resume"`
	ChangesExplanation     string          `json:"changes_explanation"`
	ATSScore               float64         `json:"ats_score"`
	KeywordIntegration     []string        `json:"keyword_integration"`
	ImprovementSuggestions []string        `json:"improvement_suggestions"`

	// Degraded marks a fallback result produced after a collaborator failure.
	Degraded bool `json:"degraded,omitempty"`
	// RawText is the unparsed model output, kept for payload extraction.
	RawText string `json:"-"`
}

// JobContext carries the scraped job information fed into tailoring.
type JobContext struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description" validate:"required,min=1"`
}
