// Package fill - upload.go implements the four escalating résumé-upload
// tactics. Each tactic runs only when the previous ones found no control
// or failed to accept the file.
package fill

import (
	"time"

	"github.com/jonathan/apply-agent/internal/browser"
)

const revealSettleDelay = 300 * time.Millisecond

// UploadResume tries to set the résumé file on the page, best-effort.
func UploadResume(page browser.Page, resumePath string) Outcome {
	tactics := []func(browser.Page, string) Outcome{
		uploadByLabelledInput,
		uploadByResumeTextLabel,
		uploadByRevealButton,
		uploadByFirstFileInput,
	}
	result := OutcomeNoMatch
	for _, tactic := range tactics {
		result = tactic(page, resumePath)
		if result.Applied() {
			return result
		}
	}
	return result
}

// Tactic 1: a file input whose enclosing label mentions résumé/CV.
func uploadByLabelledInput(page browser.Page, resumePath string) Outcome {
	inputs := page.Locator(selFileInput)
	n, err := inputs.Count()
	if err != nil || n == 0 {
		return OutcomeNoMatch
	}
	for i := 0; i < n; i++ {
		inp := inputs.Nth(i)
		label := inp.Locator(selAncestorLabel)
		if ln, err := label.Count(); err != nil || ln == 0 {
			continue
		}
		text, err := label.First().InnerText()
		if err != nil || !rxResume.MatchString(text) {
			continue
		}
		if err := inp.SetInputFiles(resumePath); err != nil {
			return OutcomeFailed
		}
		return OutcomeApplied
	}
	return OutcomeNoMatch
}

// Tactic 2: visible résumé/CV text, walked up to its enclosing label, with
// a file input inside that label.
func uploadByResumeTextLabel(page browser.Page, resumePath string) Outcome {
	label := page.ByText(rxResume).Locator(selAncestorLabel)
	if n, err := label.Count(); err != nil || n == 0 {
		return OutcomeNoMatch
	}
	fileInput := label.Locator(selFileInput)
	if n, err := fileInput.Count(); err != nil || n == 0 {
		return OutcomeNoMatch
	}
	if err := fileInput.First().SetInputFiles(resumePath); err != nil {
		return OutcomeFailed
	}
	return OutcomeApplied
}

// Tactic 3: click an upload/attach/résumé button to reveal a hidden file
// input, then use it.
func uploadByRevealButton(page browser.Page, resumePath string) Outcome {
	candidates := page.Locator(selButtons).FilterByText(rxUploadReveal)
	if n, err := candidates.Count(); err != nil || n == 0 {
		return OutcomeNoMatch
	}
	if err := candidates.First().Click(); err != nil {
		return OutcomeFailed
	}
	page.WaitFor(revealSettleDelay)
	revealed := page.Locator(selFileInput)
	if n, err := revealed.Count(); err != nil || n == 0 {
		return OutcomeFailed
	}
	if err := revealed.First().SetInputFiles(resumePath); err != nil {
		return OutcomeFailed
	}
	return OutcomeApplied
}

// Tactic 4: last resort, the first file input on the page.
func uploadByFirstFileInput(page browser.Page, resumePath string) Outcome {
	inputs := page.Locator(selFileInput)
	if n, err := inputs.Count(); err != nil || n == 0 {
		return OutcomeNoMatch
	}
	if err := inputs.First().SetInputFiles(resumePath); err != nil {
		return OutcomeFailed
	}
	return OutcomeApplied
}
