// Package fill - outcome.go models the result of one best-effort tactic so
// "no match, try the next tactic" is an explicit branch rather than a
// swallowed error.
package fill

// Outcome classifies one locate/fill/click tactic.
type Outcome int

const (
	// OutcomeNoMatch means the tactic found nothing to act on.
	OutcomeNoMatch Outcome = iota
	// OutcomeApplied means the tactic located its target and acted on it.
	OutcomeApplied
	// OutcomeFailed means the tactic located a target but acting on it
	// failed (not fillable, rejected file, timeout).
	OutcomeFailed
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	default:
		return "no_match"
	}
}

// Applied reports whether the tactic succeeded.
func (o Outcome) Applied() bool { return o == OutcomeApplied }
