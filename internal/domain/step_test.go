package domain

import "testing"

func TestStepIndexRoundTrips(t *testing.T) {
	steps := []WizardStep{StepSetup, StepTemplates, StepRounds, StepFundraising, StepPrizes, StepReview}
	for i, step := range steps {
		if step.Index() != i {
			t.Fatalf("expected %s at index %d, got %d", step, i, step.Index())
		}
		if StepAt(i) != step {
			t.Fatalf("expected StepAt(%d) == %s, got %s", i, step, StepAt(i))
		}
	}
}

func TestUnknownStepDefaultsToSetup(t *testing.T) {
	if idx := WizardStep("bogus").Index(); idx != 0 {
		t.Fatalf("expected unknown step to resolve to 0, got %d", idx)
	}
	if idx := WizardStep("").Index(); idx != 0 {
		t.Fatalf("expected empty step to resolve to 0, got %d", idx)
	}
}

func TestStepAtClamps(t *testing.T) {
	if StepAt(-3) != StepSetup {
		t.Fatalf("expected negative ordinal to clamp to setup")
	}
	if StepAt(99) != StepReview {
		t.Fatalf("expected oversized ordinal to clamp to review")
	}
}

func TestOnlyReviewIsTerminal(t *testing.T) {
	if !StepReview.IsTerminal() {
		t.Fatalf("expected review to be terminal")
	}
	for _, step := range []WizardStep{StepSetup, StepTemplates, StepRounds, StepFundraising, StepPrizes} {
		if step.IsTerminal() {
			t.Fatalf("expected %s not to be terminal", step)
		}
	}
}
