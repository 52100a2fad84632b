// Package fill - compliance.go answers the four fixed US-compliance
// question categories by locating the question container and trying
// radio/checkbox options, select dropdowns, then button chips.
package fill

import (
	"regexp"

	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/types"
)

// Category is one of the fixed compliance question categories.
type Category string

const (
	// CategoryAuthorization covers work-authorization questions
	CategoryAuthorization Category = "work_authorization"
	// CategorySponsorship covers visa-sponsorship questions
	CategorySponsorship Category = "sponsorship"
	// CategoryVeteran covers protected-veteran status questions
	CategoryVeteran Category = "veteran_status"
	// CategoryDisability covers disability (CC-305/OFCCP) questions
	CategoryDisability Category = "disability_status"
)

// CategoryAnswer pairs a category with its tactic outcome.
type CategoryAnswer struct {
	Category Category
	Outcome  Outcome
}

// ChooseOption locates the question block matching one of the patterns and
// selects the option matching the desired yes/no intent. When no option
// text matches the intent vocabulary, the first option is the documented
// fallback.
func ChooseOption(page browser.Page, patterns []*regexp.Regexp, preferYes bool) Outcome {
	optionRx, selectRx, chipRx := rxOptionNo, rxSelectNo, rxChipNo
	if preferYes {
		optionRx, selectRx, chipRx = rxOptionYes, rxSelectYes, rxChipYes
	}

	result := OutcomeNoMatch
	for _, pat := range patterns {
		question := page.ByText(pat)
		if n, err := question.Count(); err != nil || n == 0 {
			continue
		}
		container := question.Nth(0).Locator(selAncestorContainer)

		// Radio/checkbox-labelled options.
		if out, done := chooseRadioOption(container, optionRx); done {
			if out.Applied() {
				return out
			}
			result = out
		}

		// Select dropdowns.
		sel := container.Locator(selSelect)
		if n, err := sel.Count(); err == nil && n > 0 {
			matched, err := sel.First().SelectOptionByLabel(selectRx)
			if err != nil {
				result = OutcomeFailed
			} else if matched {
				return OutcomeApplied
			}
		}

		// Button chips.
		if out := chooseChip(container, chipRx); out.Applied() {
			return out
		} else if out == OutcomeFailed {
			result = out
		}
	}
	return result
}

// chooseRadioOption picks the option whose text matches the intent, or the
// first option when none does. done is false when the container has no
// radio/checkbox options at all.
func chooseRadioOption(container browser.Locator, intentRx *regexp.Regexp) (Outcome, bool) {
	options := container.Locator(selChoiceLabels)
	n, err := options.Count()
	if err != nil || n == 0 {
		return OutcomeNoMatch, false
	}
	target := options.First()
	for i := 0; i < n; i++ {
		text, err := options.Nth(i).InnerText()
		if err != nil {
			continue
		}
		if intentRx.MatchString(text) {
			target = options.Nth(i)
			break
		}
	}
	if err := target.Click(); err != nil {
		return OutcomeFailed, true
	}
	return OutcomeApplied, true
}

// chooseChip clicks the button/chip option matching the intent.
func chooseChip(container browser.Locator, intentRx *regexp.Regexp) Outcome {
	chips := container.Locator(selChips)
	n, err := chips.Count()
	if err != nil || n == 0 {
		return OutcomeNoMatch
	}
	for i := 0; i < n; i++ {
		text, err := chips.Nth(i).InnerText()
		if err != nil {
			continue
		}
		if !intentRx.MatchString(text) {
			continue
		}
		if err := chips.Nth(i).Click(); err != nil {
			return OutcomeFailed
		}
		return OutcomeApplied
	}
	return OutcomeNoMatch
}

// AnswerComplianceQuestions answers all four categories with the intent
// policy baked into the applicant answers.
func AnswerComplianceQuestions(page browser.Page, a types.ApplicantAnswers) []CategoryAnswer {
	return []CategoryAnswer{
		{CategoryAuthorization, ChooseOption(page, questionsAuthorization, a.WantsAuthorizationYes())},
		{CategorySponsorship, ChooseOption(page, questionsSponsorship, a.WantsSponsorshipYes())},
		{CategoryVeteran, ChooseOption(page, questionsVeteran, a.WantsVeteranYes())},
		{CategoryDisability, ChooseOption(page, questionsDisability, a.WantsDisabilityYes())},
	}
}
