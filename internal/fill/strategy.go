// Package fill - strategy.go runs the shared filling algorithm for the
// resolved provider. Vendors currently share one algorithm; the explicit
// provider dispatch is the extension point for per-vendor divergence.
package fill

import (
	"fmt"
	"os"

	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/runbus"
	"github.com/jonathan/apply-agent/internal/types"
)

// Strategy fills an application form for one resolved provider.
type Strategy struct {
	Provider Provider
}

// StrategyFor resolves the strategy for a URL. Always succeeds; unknown
// sites get the generic strategy.
func StrategyFor(rawURL string) Strategy {
	return Strategy{Provider: Resolve(rawURL)}
}

// Prefill populates profile fields, uploads the résumé when a file is
// available, and answers compliance questions. Every step is best-effort:
// misses and failures are published to the run's event bus and never abort
// the run; whatever stays unfilled is left for human review.
func (s Strategy) Prefill(page browser.Page, resumePath string, answers types.ApplicantAnswers, runID string, bus *runbus.Bus) {
	switch s.Provider {
	case ProviderGreenhouse, ProviderLever, ProviderWorkday, ProviderAshby, ProviderICIMS, ProviderTaleo:
		bus.Emit(runID, runbus.Log(runbus.LevelInfo, fmt.Sprintf("Detected %s", s.Provider)))
	case ProviderGeneric:
		bus.Emit(runID, runbus.Log(runbus.LevelInfo, "Unknown ATS; using generic strategy"))
	}

	filled, missed := 0, 0
	for _, f := range FillProfileFields(page, answers) {
		switch f.Outcome {
		case OutcomeApplied:
			filled++
		case OutcomeFailed:
			missed++
			bus.Emit(runID, runbus.Log(runbus.LevelWarn, fmt.Sprintf("Could not fill %s", f.Field)))
		default:
			missed++
		}
	}
	bus.Emit(runID, runbus.Log(runbus.LevelInfo, fmt.Sprintf("Profile fields: %d filled, %d skipped", filled, missed)))

	if resumePath != "" {
		if _, err := os.Stat(resumePath); err == nil {
			out := UploadResume(page, resumePath)
			if out.Applied() {
				bus.Emit(runID, runbus.Log(runbus.LevelInfo, "Resume upload OK"))
			} else {
				bus.Emit(runID, runbus.Log(runbus.LevelWarn, fmt.Sprintf("Resume upload %s", out)))
			}
		}
	}

	for _, ans := range AnswerComplianceQuestions(page, answers) {
		if ans.Outcome == OutcomeFailed {
			bus.Emit(runID, runbus.Log(runbus.LevelWarn, fmt.Sprintf("Could not answer %s question", ans.Category)))
		}
	}

	bus.Emit(runID, runbus.Log(runbus.LevelInfo, "Prefill complete; pausing for human review."))
}
