package domain

// WizardStep identifies one screen in the event setup wizard.
type WizardStep string

const (
	StepSetup       WizardStep = "setup"
	StepTemplates   WizardStep = "templates"
	StepRounds      WizardStep = "rounds"
	StepFundraising WizardStep = "fundraising"
	StepPrizes      WizardStep = "prizes"
	StepReview      WizardStep = "review"
)

// stepOrder is the canonical wizard progression. The flow controller does its
// arithmetic over indexes into this slice.
var stepOrder = []WizardStep{
	StepSetup,
	StepTemplates,
	StepRounds,
	StepFundraising,
	StepPrizes,
	StepReview,
}

// Index resolves the ordinal position of a step. Unknown or empty values
// resolve to 0 so a corrupted persisted step lands the user back on setup
// instead of failing.
func (s WizardStep) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return 0
}

// StepAt returns the step at the given ordinal, clamped to the valid range.
func StepAt(index int) WizardStep {
	if index < 0 {
		index = 0
	}
	if index > len(stepOrder)-1 {
		index = len(stepOrder) - 1
	}
	return stepOrder[index]
}

// LastStepIndex is the ordinal of the terminal review step.
func LastStepIndex() int {
	return len(stepOrder) - 1
}

// IsTerminal reports whether a forward action from this step completes the
// wizard instead of transitioning.
func (s WizardStep) IsTerminal() bool {
	return s.Index() == len(stepOrder)-1
}
