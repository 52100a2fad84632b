package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/apply-agent/internal/browser/browsertest"
)

const testResumePath = "/tmp/resume.pdf"

func TestUploadByLabelledInput(t *testing.T) {
	input := browsertest.Input("file", "")
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.El("label", browsertest.TextEl("Resume/CV"), input),
	)

	assert.Equal(t, OutcomeApplied, uploadByLabelledInput(page, testResumePath))
	assert.Equal(t, testResumePath, input.Files)
}

func TestUploadByLabelledInput_IgnoresUnrelatedLabel(t *testing.T) {
	input := browsertest.Input("file", "")
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.El("label", browsertest.TextEl("Cover letter"), input),
	)

	assert.Equal(t, OutcomeNoMatch, uploadByLabelledInput(page, testResumePath))
	assert.Empty(t, input.Files)
}

func TestUploadByResumeTextLabel(t *testing.T) {
	input := browsertest.Input("file", "")
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.El("label", browsertest.TextEl("Attach your résumé"), input),
	)

	assert.Equal(t, OutcomeApplied, uploadByResumeTextLabel(page, testResumePath))
	assert.Equal(t, testResumePath, input.Files)
}

func TestUploadByRevealButton(t *testing.T) {
	reveal := browsertest.Button("Upload resume")
	reveal.OnClick = func(p *browsertest.Page) {
		p.Append(browsertest.Input("file", ""))
	}
	page := browsertest.NewPage("https://example.com/apply", reveal)

	assert.Equal(t, OutcomeApplied, uploadByRevealButton(page, testResumePath))
	assert.True(t, reveal.Clicked)
}

func TestUploadByRevealButton_NothingRevealed(t *testing.T) {
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.Button("Upload resume"),
	)
	assert.Equal(t, OutcomeFailed, uploadByRevealButton(page, testResumePath))
}

func TestUploadByFirstFileInput(t *testing.T) {
	input := browsertest.Input("file", "")
	page := browsertest.NewPage("https://example.com/apply", input)

	assert.Equal(t, OutcomeApplied, uploadByFirstFileInput(page, testResumePath))
	assert.Equal(t, testResumePath, input.Files)
}

// The tactics escalate: a bare unlabelled file input is only reached by the
// last tactic, but UploadResume still lands the file on it.
func TestUploadResumeEscalatesToLastTactic(t *testing.T) {
	input := browsertest.Input("file", "")
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.El("div", browsertest.TextEl("Work history"), input),
	)

	assert.Equal(t, OutcomeApplied, UploadResume(page, testResumePath))
	assert.Equal(t, testResumePath, input.Files)
}

func TestUploadResumeNoControls(t *testing.T) {
	page := browsertest.NewPage("https://example.com/apply",
		browsertest.TextEl("Thanks for applying"),
	)
	assert.Equal(t, OutcomeNoMatch, UploadResume(page, testResumePath))
}
