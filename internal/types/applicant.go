// Package types provides type definitions for structured data shared across the apply-agent system.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ApplicantAnswers is the canonical answer set mapped onto third-party
// application forms. It is supplied once per run and never mutated during
// the run; pass it by value.
type ApplicantAnswers struct {
	FullName  string `json:"full_name" validate:"required,min=1"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`

	// Optional profile links.
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`

	// Compliance flags. These drive the yes/no intent for the four fixed
	// question categories answered during prefill.
	USCitizen        bool `json:"us_citizen"`
	NeedsSponsorship bool `json:"needs_sponsorship"`
	ProtectedVeteran bool `json:"protected_veteran"`
	HasDisability    bool `json:"has_disability"`
}

// Normalize fills FirstName and LastName from FullName when they were not
// provided explicitly. It returns a copy; the receiver is unchanged.
func (a ApplicantAnswers) Normalize() ApplicantAnswers {
	parts := strings.Fields(a.FullName)
	if a.FirstName == "" && len(parts) > 0 {
		a.FirstName = parts[0]
	}
	if a.LastName == "" && len(parts) > 1 {
		a.LastName = parts[len(parts)-1]
	}
	return a
}

// Validate validates the answers using the validator.
func (a ApplicantAnswers) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// Desired yes/no intent per compliance category. "Prefer yes" means the
// option matching yes-vocabulary should be selected; the vocabulary itself
// lives with the fill heuristics.

// WantsAuthorizationYes reports the desired answer to work-authorization questions.
func (a ApplicantAnswers) WantsAuthorizationYes() bool { return a.USCitizen }

// WantsSponsorshipYes reports the desired answer to sponsorship questions.
// Phrased options like "I do not require sponsorship" count as yes-intent,
// so a candidate who needs no sponsorship prefers yes here.
func (a ApplicantAnswers) WantsSponsorshipYes() bool { return !a.NeedsSponsorship }

// WantsVeteranYes reports the desired answer to protected-veteran questions.
func (a ApplicantAnswers) WantsVeteranYes() bool { return a.ProtectedVeteran }

// WantsDisabilityYes reports the desired answer to disability (CC-305) questions.
func (a ApplicantAnswers) WantsDisabilityYes() bool { return a.HasDisability }
