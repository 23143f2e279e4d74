package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"quiz-setup-service/internal/app"
	"quiz-setup-service/internal/catalog"
	"quiz-setup-service/internal/domain"
	"quiz-setup-service/internal/schedule"
)

func newTestService() *app.SetupService {
	templates := catalog.NewTemplateRepository(
		catalog.NewStaticTemplateLoader(catalog.BuiltinTemplates()), time.Minute)
	return app.NewSetupService(newTestStore(), templates, catalog.RoundTypeDefaults, zerolog.Nop())
}

func TestApplyCustomTemplate(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	cfg, err := service.ApplyTemplate(ctx, domain.CustomTemplateID)
	if err != nil {
		t.Fatalf("apply custom: %v", err)
	}
	if len(cfg.Rounds) != 0 {
		t.Fatalf("expected empty round list, got %d rounds", len(cfg.Rounds))
	}
	if cfg.SkipRoundConfiguration {
		t.Fatalf("expected skip flag false for custom setup")
	}
	if cfg.TemplateID != domain.CustomTemplateID {
		t.Fatalf("expected custom sentinel stored, got %q", cfg.TemplateID)
	}
}

func TestApplyCatalogTemplate(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	cfg, err := service.ApplyTemplate(ctx, "classic-pub-6")
	if err != nil {
		t.Fatalf("apply template: %v", err)
	}
	if len(cfg.Rounds) != 6 {
		t.Fatalf("expected 6 rounds, got %d", len(cfg.Rounds))
	}
	for i, r := range cfg.Rounds {
		if r.RoundNumber != i+1 {
			t.Fatalf("expected contiguous numbering, round %d has number %d", i, r.RoundNumber)
		}
	}
	if !cfg.SkipRoundConfiguration {
		t.Fatalf("expected skip flag true for catalog template")
	}
}

func TestApplyTemplateReplacesPreviousRounds(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.ApplyTemplate(ctx, "marathon-challenge-8"); err != nil {
		t.Fatalf("apply marathon: %v", err)
	}
	cfg, err := service.ApplyTemplate(ctx, "quick-fire-5")
	if err != nil {
		t.Fatalf("apply quick-fire: %v", err)
	}
	if len(cfg.Rounds) != 5 {
		t.Fatalf("expected previous rounds replaced wholesale, got %d", len(cfg.Rounds))
	}
}

func TestApplyUnknownTemplate(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.ApplyTemplate(ctx, "does-not-exist"); err != domain.ErrTemplateNotFound {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestUpdateRoundKeepsNumbering(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.ApplyTemplate(ctx, "classic-pub-6"); err != nil {
		t.Fatalf("apply template: %v", err)
	}

	category := "Mythology"
	difficulty := domain.DifficultyHard
	cfg, err := service.UpdateRound(ctx, 2, app.RoundEdit{
		Category:      &category,
		Difficulty:    &difficulty,
		EnabledExtras: map[string]bool{"buyHint": true},
	})
	if err != nil {
		t.Fatalf("update round: %v", err)
	}

	r := cfg.Rounds[1]
	if r.RoundNumber != 2 || r.Category != "Mythology" || r.Difficulty != domain.DifficultyHard {
		t.Fatalf("expected round 2 edited in place, got %#v", r)
	}
	if !r.EnabledExtras["buyHint"] {
		t.Fatalf("expected extras applied, got %#v", r.EnabledExtras)
	}
	if cfg.Rounds[0].Category == "Mythology" {
		t.Fatalf("expected other rounds untouched")
	}
}

func TestUpdateRoundMissing(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.UpdateRound(ctx, 4, app.RoundEdit{}); err != domain.ErrRoundNotFound {
		t.Fatalf("expected ErrRoundNotFound, got %v", err)
	}
}

func TestEstimateUsesTemplateTags(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	// family-fun-6 carries audience:family and six rounds, so the tag-aware
	// strategy places a single midpoint break.
	if _, err := service.ApplyTemplate(ctx, "family-fun-6"); err != nil {
		t.Fatalf("apply template: %v", err)
	}

	est, err := service.Estimate(ctx, schedule.BreakTagAware)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if len(est.BreaksAfter) != 1 || est.BreaksAfter[0] != 3 {
		t.Fatalf("expected midpoint break, got %v", est.BreaksAfter)
	}
	if est.TotalMinutes <= 0 {
		t.Fatalf("expected positive total, got %d", est.TotalMinutes)
	}
}
