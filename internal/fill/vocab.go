// Package fill maps heterogeneous, unlabeled third-party application forms
// onto the canonical applicant-answer set via layered heuristics, and
// routes URLs to provider-specific filling strategies.
package fill

import "regexp"

func rx(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// Label vocabulary for logical profile fields. Patterns are tried in order;
// accessible-label lookup first, visible-text fallback second.
var (
	labelsFullName = []*regexp.Regexp{rx(`full\s*name`), rx(`legal\s*name`)}
	labelsFirst    = []*regexp.Regexp{rx(`first\s*name`)}
	labelsLast     = []*regexp.Regexp{rx(`last\s*name`)}
	labelsEmail    = []*regexp.Regexp{rx(`email`)}
	labelsPhone    = []*regexp.Regexp{rx(`phone`)}
	labelsCity     = []*regexp.Regexp{rx(`city|town`)}
	labelsState    = []*regexp.Regexp{rx(`state|province|region`)}
	labelsLinkedIn = []*regexp.Regexp{rx(`linkedin`)}
	labelsWebsite  = []*regexp.Regexp{rx(`website|portfolio|personal\s*site`)}
	labelsGitHub   = []*regexp.Regexp{rx(`github`)}
)

// Résumé vocabulary for the upload tactics.
var (
	rxResume       = rx(`resume|résumé|cv`)
	rxUploadReveal = rx(`upload|attach|resume|résumé|cv`)
)

// Compliance question vocabulary, one pattern list per fixed category.
var (
	questionsAuthorization = []*regexp.Regexp{
		rx(`(are you|i am).*(authorized|legally authorized).*work.*united states`),
		rx(`work authorization`),
		rx(`authorized to work in the us`),
	}
	questionsSponsorship = []*regexp.Regexp{
		rx(`(require|need).*(visa|sponsorship)`),
		rx(`will you now or in the future require sponsorship`),
	}
	questionsVeteran = []*regexp.Regexp{
		rx(`protected\s*veteran|veteran\s*status`),
	}
	questionsDisability = []*regexp.Regexp{
		rx(`disability|disabled`),
		rx(`cc-?305`),
		rx(`ofccp`),
	}
)

// Yes/no intent vocabulary. Negated phrasings like "do not require
// sponsorship" carry yes-intent for the sponsorship category, so they live
// in the yes set.
var (
	rxOptionYes = rx(`\b(yes|i am|authorized|do not require)\b`)
	rxOptionNo  = rx(`\b(no|i do not|not|will not)\b`)
	rxSelectYes = rx(`yes|authorized|citizen|do not require`)
	rxSelectNo  = rx(`no|not|will not|do not`)
	rxChipYes   = rx(`\b(yes|authorized|citizen|do not require)\b`)
	rxChipNo    = rx(`\b(no|not|will not|do not)\b`)
)

// Structural selectors shared by the heuristics.
const (
	selFileInput         = "input[type='file']"
	selAncestorLabel     = "xpath=ancestor::label[1]"
	selAncestorContainer = "xpath=ancestor::*[self::div or self::section or self::fieldset][1]"
	selPlainInputs       = "input[type='text'],input[type='email'],input[type='tel'],textarea"
	selChoiceLabels      = "label:has(input[type='radio']),label:has(input[type='checkbox'])"
	selSelect            = "select"
	selChips             = "button,[role='button'],.chip,.option"
	selButtons           = "button,[role='button']"
)

// maxTextFallbackMatches caps how many visible-text matches are probed for
// an input container during the field fallback.
const maxTextFallbackMatches = 5
