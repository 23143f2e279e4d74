package app

import (
	"context"

	"quiz-setup-service/internal/domain"
)

// StepStore is the slice of the configuration store the flow controller
// needs: the current step and the skip flag inside the config.
type StepStore interface {
	GetStep() domain.WizardStep
	SetStep(ctx context.Context, step domain.WizardStep)
	GetConfig() domain.SetupConfig
}

// FlowController decides wizard transitions. It reads exactly one
// configuration flag, SkipRoundConfiguration: when set, the rounds step is
// bypassed in both directions so goBack stays the exact inverse of goNext.
// Transitions never fail; the step index is always clamped to the valid
// range and unknown steps resolve to setup.
type FlowController struct {
	store       StepStore
	onComplete  func()
	onScrollTop func()
}

// NewFlowController wires the controller to its store and callbacks.
// onComplete fires on the forward action from the terminal review step;
// onScrollTop is a UI hint after every transition. Either may be nil.
func NewFlowController(store StepStore, onComplete, onScrollTop func()) *FlowController {
	return &FlowController{store: store, onComplete: onComplete, onScrollTop: onScrollTop}
}

// GoNext advances the wizard. From templates with the skip flag set it
// advances two steps, over rounds. From review it invokes the completion
// callback instead of transitioning and reports completed=true.
func (f *FlowController) GoNext(ctx context.Context) (domain.WizardStep, bool) {
	current := f.store.GetStep()
	idx := current.Index()

	if idx == domain.LastStepIndex() {
		if f.onComplete != nil {
			f.onComplete()
		}
		return domain.StepAt(idx), true
	}

	stride := 1
	if current == domain.StepTemplates && f.skipRounds() {
		stride = 2
	}

	next := domain.StepAt(idx + stride)
	f.store.SetStep(ctx, next)
	f.scrollTop()
	return next, false
}

// GoBack retreats the wizard, undoing the forward skip symmetrically: from
// fundraising with the skip flag set it retreats two steps. The setup step
// is never exited backward.
func (f *FlowController) GoBack(ctx context.Context) domain.WizardStep {
	current := f.store.GetStep()
	idx := current.Index()

	stride := 1
	if current == domain.StepFundraising && f.skipRounds() {
		stride = 2
	}

	prev := domain.StepAt(idx - stride)
	f.store.SetStep(ctx, prev)
	f.scrollTop()
	return prev
}

// ResetToFirst forces the wizard back to setup regardless of the current
// step or flag state.
func (f *FlowController) ResetToFirst(ctx context.Context) domain.WizardStep {
	f.store.SetStep(ctx, domain.StepSetup)
	f.scrollTop()
	return domain.StepSetup
}

func (f *FlowController) skipRounds() bool {
	return f.store.GetConfig().SkipRoundConfiguration
}

func (f *FlowController) scrollTop() {
	if f.onScrollTop != nil {
		f.onScrollTop()
	}
}
