package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-agent/internal/browser/browsertest"
	"github.com/jonathan/apply-agent/internal/types"
)

func TestFillTextField_ByLabel(t *testing.T) {
	input := browsertest.Input("text", "First Name")
	page := browsertest.NewPage("https://example.com/apply", input)

	out := FillTextField(page, labelsFirst, "Jane")
	assert.Equal(t, OutcomeApplied, out)
	assert.Equal(t, "Jane", input.Value)
}

func TestFillTextField_TextFallbackIntoContainer(t *testing.T) {
	input := browsertest.Input("text", "")
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.El("div",
			browsertest.TextEl("City or town"),
			input,
		),
	)

	out := FillTextField(page, labelsCity, "Boston")
	assert.Equal(t, OutcomeApplied, out)
	assert.Equal(t, "Boston", input.Value)
}

func TestFillTextField_SkipsEmptyValue(t *testing.T) {
	input := browsertest.Input("text", "Phone")
	page := browsertest.NewPage("https://example.com/apply", input)

	out := FillTextField(page, labelsPhone, "")
	assert.Equal(t, OutcomeNoMatch, out)
	assert.Empty(t, input.Value)
}

func TestFillTextField_NoMatchingControl(t *testing.T) {
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.TextEl("Nothing useful here"),
	)
	assert.Equal(t, OutcomeNoMatch, FillTextField(page, labelsGitHub, "https://github.com/jane"))
}

func TestFillProfileFields(t *testing.T) {
	first := browsertest.Input("text", "First Name")
	last := browsertest.Input("text", "Last Name")
	email := browsertest.Input("email", "Email Address")
	linkedin := browsertest.Input("text", "LinkedIn Profile")
	page := browsertest.NewPage("https://example.com/apply", first, last, email, linkedin)

	answers := types.ApplicantAnswers{
		FullName: "Jane Q Doe",
		Email:    "jane@example.com",
		LinkedIn: "https://linkedin.com/in/jane",
	}

	results := FillProfileFields(page, answers)
	require.Len(t, results, 10)

	byField := map[string]Outcome{}
	for _, r := range results {
		byField[r.Field] = r.Outcome
	}

	// First and last name derive from the full name.
	assert.Equal(t, OutcomeApplied, byField["first_name"])
	assert.Equal(t, "Jane", first.Value)
	assert.Equal(t, OutcomeApplied, byField["last_name"])
	assert.Equal(t, "Doe", last.Value)
	assert.Equal(t, OutcomeApplied, byField["email"])
	assert.Equal(t, "jane@example.com", email.Value)
	assert.Equal(t, OutcomeApplied, byField["linkedin"])

	// Absent values and absent controls are skipped quietly.
	assert.Equal(t, OutcomeNoMatch, byField["phone"])
	assert.Equal(t, OutcomeNoMatch, byField["github"])
}
