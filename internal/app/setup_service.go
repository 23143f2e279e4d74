package app

import (
	"context"

	"github.com/rs/zerolog"
	"quiz-setup-service/internal/domain"
	"quiz-setup-service/internal/schedule"
	"quiz-setup-service/internal/store"
)

// TemplateRepository loads the template catalog (cached, from Postgres or a
// static list).
type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]domain.QuizTemplate, error)
	GetTemplate(ctx context.Context, id string) (domain.QuizTemplate, error)
}

// SetupService holds the wizard use cases that sit above the raw store:
// template selection, single-round edits and schedule estimation.
type SetupService struct {
	store     *store.ConfigStore
	templates TemplateRepository
	defaults  schedule.DefaultsFunc
	log       zerolog.Logger
}

func NewSetupService(cfgStore *store.ConfigStore, templates TemplateRepository, defaults schedule.DefaultsFunc, log zerolog.Logger) *SetupService {
	return &SetupService{store: cfgStore, templates: templates, defaults: defaults, log: log}
}

// Store exposes the underlying configuration store to transports.
func (s *SetupService) Store() *store.ConfigStore {
	return s.store
}

// ListTemplates returns the selectable catalog.
func (s *SetupService) ListTemplates(ctx context.Context) ([]domain.QuizTemplate, error) {
	return s.templates.ListTemplates(ctx)
}

func boolp(v bool) *bool       { return &v }
func stringp(v string) *string { return &v }

// ApplyTemplate resolves a template choice into the stored round list.
// Custom clears the rounds and forces the manual rounds step; a catalog
// template materializes its rounds and marks the step skippable. In both
// cases the previous round list is replaced wholesale.
func (s *SetupService) ApplyTemplate(ctx context.Context, templateID string) (domain.SetupConfig, error) {
	if templateID == domain.CustomTemplateID {
		cfg := s.store.UpdateConfig(ctx, domain.ConfigPatch{
			TemplateID:             stringp(domain.CustomTemplateID),
			SkipRoundConfiguration: boolp(false),
			Rounds:                 []domain.RoundDefinition{},
		})
		return cfg, nil
	}

	tpl, err := s.templates.GetTemplate(ctx, templateID)
	if err != nil {
		return domain.SetupConfig{}, err
	}

	rounds := schedule.BuildRounds(tpl, s.defaults, s.log)
	cfg := s.store.UpdateConfig(ctx, domain.ConfigPatch{
		TemplateID:             stringp(tpl.ID),
		SkipRoundConfiguration: boolp(true),
		Rounds:                 rounds,
	})
	return cfg, nil
}

// RoundEdit is an in-place mutation of one round: category, difficulty or
// extras. The round keeps its number; nil fields are left untouched.
type RoundEdit struct {
	Category      *string            `json:"category,omitempty"`
	Difficulty    *domain.Difficulty `json:"difficulty,omitempty"`
	EnabledExtras map[string]bool    `json:"enabledExtras,omitempty"`
}

// UpdateRound edits one round by number. Per the store's merge contract the
// round list is an array and arrays replace wholesale, so this reads the
// current list, swaps the target element and writes the whole list back.
func (s *SetupService) UpdateRound(ctx context.Context, roundNumber int, edit RoundEdit) (domain.SetupConfig, error) {
	current := s.store.GetConfig()

	updated := make([]domain.RoundDefinition, len(current.Rounds))
	copy(updated, current.Rounds)

	found := false
	for i := range updated {
		if updated[i].RoundNumber != roundNumber {
			continue
		}
		if edit.Category != nil {
			updated[i].Category = *edit.Category
		}
		if edit.Difficulty != nil {
			updated[i].Difficulty = *edit.Difficulty
		}
		if edit.EnabledExtras != nil {
			updated[i].EnabledExtras = edit.EnabledExtras
		}
		found = true
		break
	}
	if !found {
		return domain.SetupConfig{}, domain.ErrRoundNotFound
	}

	return s.store.UpdateConfig(ctx, domain.ConfigPatch{Rounds: updated}), nil
}

// Estimate computes the running plan for the currently stored rounds. Tags
// come from the selected template when one is set; a custom quiz has none.
func (s *SetupService) Estimate(ctx context.Context, strategy schedule.BreakStrategy) (schedule.Estimate, error) {
	cfg := s.store.GetConfig()
	tags := s.templateTags(ctx, cfg.TemplateID)
	return schedule.EstimateSchedule(cfg.Rounds, tags, strategy), nil
}

// EstimateFor recomputes the plan for an externally supplied config, used by
// the stream transport on store updates.
func (s *SetupService) EstimateFor(ctx context.Context, cfg domain.SetupConfig, strategy schedule.BreakStrategy) schedule.Estimate {
	tags := s.templateTags(ctx, cfg.TemplateID)
	return schedule.EstimateSchedule(cfg.Rounds, tags, strategy)
}

func (s *SetupService) templateTags(ctx context.Context, templateID string) []string {
	if templateID == "" || templateID == domain.CustomTemplateID {
		return nil
	}
	tpl, err := s.templates.GetTemplate(ctx, templateID)
	if err != nil {
		s.log.Debug().Err(err).Str("template", templateID).Msg("template tags unavailable for estimate")
		return nil
	}
	return tpl.Tags
}
