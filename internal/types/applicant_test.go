package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDerivesNameParts(t *testing.T) {
	tests := []struct {
		name          string
		answers       ApplicantAnswers
		expectedFirst string
		expectedLast  string
	}{
		{"two part name", ApplicantAnswers{FullName: "Jane Doe"}, "Jane", "Doe"},
		{"middle name", ApplicantAnswers{FullName: "Jane Q Doe"}, "Jane", "Doe"},
		{"single name", ApplicantAnswers{FullName: "Jane"}, "Jane", ""},
		{"explicit parts win", ApplicantAnswers{FullName: "Jane Doe", FirstName: "Janet", LastName: "Dole"}, "Janet", "Dole"},
		{"empty", ApplicantAnswers{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.answers.Normalize()
			assert.Equal(t, tt.expectedFirst, got.FirstName)
			assert.Equal(t, tt.expectedLast, got.LastName)
		})
	}
}

func TestNormalizeDoesNotMutateReceiver(t *testing.T) {
	a := ApplicantAnswers{FullName: "Jane Doe"}
	_ = a.Normalize()
	assert.Empty(t, a.FirstName)
}

func TestValidate(t *testing.T) {
	valid := ApplicantAnswers{FullName: "Jane Doe", Email: "jane@example.com"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		answers ApplicantAnswers
	}{
		{"missing name", ApplicantAnswers{Email: "jane@example.com"}},
		{"missing email", ApplicantAnswers{FullName: "Jane Doe"}},
		{"bad email", ApplicantAnswers{FullName: "Jane Doe", Email: "nope"}},
		{"bad linkedin", ApplicantAnswers{FullName: "Jane Doe", Email: "jane@example.com", LinkedIn: "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.answers.Validate())
		})
	}
}

func TestComplianceIntent(t *testing.T) {
	a := ApplicantAnswers{USCitizen: true, NeedsSponsorship: false, ProtectedVeteran: false, HasDisability: true}

	assert.True(t, a.WantsAuthorizationYes())
	// No sponsorship needed means yes-intent: the phrased options this
	// category targets read "I do not require sponsorship".
	assert.True(t, a.WantsSponsorshipYes())
	assert.False(t, a.WantsVeteranYes())
	assert.True(t, a.WantsDisabilityYes())

	a.NeedsSponsorship = true
	assert.False(t, a.WantsSponsorshipYes())
}
