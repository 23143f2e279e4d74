package store_test

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"quiz-setup-service/internal/domain"
	"quiz-setup-service/internal/infra/memory"
	"quiz-setup-service/internal/store"
)

func newStore(t *testing.T) *store.ConfigStore {
	t.Helper()
	return store.NewConfigStore(context.Background(), memory.NewSnapshotPersister(), clockwork.NewRealClock(), zerolog.Nop())
}

func TestUpdateConfigDeepMergesFundraising(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	s.UpdateConfig(ctx, domain.ConfigPatch{Fundraising: map[string]any{"extras": map[string]any{"buyHint": true}}})
	s.UpdateConfig(ctx, domain.ConfigPatch{Fundraising: map[string]any{"extras": map[string]any{"freezeTeam": true}}})

	extras, ok := s.GetConfig().Fundraising["extras"].(map[string]any)
	if !ok {
		t.Fatalf("expected extras map, got %#v", s.GetConfig().Fundraising["extras"])
	}
	if extras["buyHint"] != true || extras["freezeTeam"] != true {
		t.Fatalf("expected nested keys merged, got %#v", extras)
	}
}

func TestUpdateConfigReplacesArraysInsideFundraising(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	s.UpdateConfig(ctx, domain.ConfigPatch{Fundraising: map[string]any{"tiers": []any{"bronze", "silver"}}})
	s.UpdateConfig(ctx, domain.ConfigPatch{Fundraising: map[string]any{"tiers": []any{"gold"}}})

	tiers, ok := s.GetConfig().Fundraising["tiers"].([]any)
	if !ok {
		t.Fatalf("expected tiers array, got %#v", s.GetConfig().Fundraising["tiers"])
	}
	if len(tiers) != 1 || tiers[0] != "gold" {
		t.Fatalf("expected array replaced wholesale, got %#v", tiers)
	}
}

func TestUpdateConfigReplacesRoundList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := []domain.RoundDefinition{
		{RoundNumber: 1, RoundType: domain.RoundGeneralTrivia},
		{RoundNumber: 2, RoundType: domain.RoundWipeout},
	}
	second := []domain.RoundDefinition{
		{RoundNumber: 1, RoundType: domain.RoundSpeedRound},
	}

	s.UpdateConfig(ctx, domain.ConfigPatch{Rounds: first})
	s.UpdateConfig(ctx, domain.ConfigPatch{Rounds: second})

	rounds := s.GetConfig().Rounds
	if len(rounds) != 1 {
		t.Fatalf("expected round list replaced, not merged: %#v", rounds)
	}
	if rounds[0].RoundType != domain.RoundSpeedRound {
		t.Fatalf("expected replacement round, got %#v", rounds[0])
	}
}

func TestUpdateConfigMergesHostFragment(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	name := "Alice"
	email := "alice@example.org"
	s.UpdateConfig(ctx, domain.ConfigPatch{Host: &domain.HostInfoPatch{Name: &name}})
	s.UpdateConfig(ctx, domain.ConfigPatch{Host: &domain.HostInfoPatch{Email: &email}})

	host := s.GetConfig().Host
	if host.Name != "Alice" || host.Email != "alice@example.org" {
		t.Fatalf("expected host fields merged, got %#v", host)
	}
}

func TestResetConfigKeepsSessionIDsWhenAsked(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	ids := s.SessionIDs()
	if ids.PreRoomID == "" {
		t.Fatalf("expected a minted pre-room id")
	}

	tplID := "classic-pub-6"
	s.UpdateConfig(ctx, domain.ConfigPatch{TemplateID: &tplID})
	s.SetStep(ctx, domain.StepPrizes)

	s.ResetConfig(ctx, true)
	if got := s.GetConfig(); got.TemplateID != "" {
		t.Fatalf("expected config cleared, got %#v", got)
	}
	if s.GetStep() != domain.StepSetup {
		t.Fatalf("expected step reset to setup, got %s", s.GetStep())
	}
	if s.SessionIDs() != ids {
		t.Fatalf("expected session ids preserved, got %#v", s.SessionIDs())
	}

	s.ResetConfig(ctx, false)
	if s.SessionIDs() == ids {
		t.Fatalf("expected fresh session ids after full reset")
	}
}

func TestPurgeInvalidatesPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	persister := memory.NewSnapshotPersister()
	s := store.NewConfigStore(ctx, persister, clockwork.NewRealClock(), zerolog.Nop())

	tplID := "classic-pub-6"
	s.UpdateConfig(ctx, domain.ConfigPatch{TemplateID: &tplID})
	if _, found, _ := persister.Load(ctx); !found {
		t.Fatalf("expected snapshot persisted")
	}

	s.Purge(ctx)
	if _, found, _ := persister.Load(ctx); found {
		t.Fatalf("expected snapshot purged")
	}

	rehydrated := store.NewConfigStore(ctx, persister, clockwork.NewRealClock(), zerolog.Nop())
	if rehydrated.GetConfig().TemplateID != "" {
		t.Fatalf("expected purged store to rehydrate empty")
	}
}

func TestStoreRehydratesFromPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	persister := memory.NewSnapshotPersister()
	s := store.NewConfigStore(ctx, persister, clockwork.NewRealClock(), zerolog.Nop())

	tplID := "family-fun-6"
	skip := true
	s.UpdateConfig(ctx, domain.ConfigPatch{TemplateID: &tplID, SkipRoundConfiguration: &skip})
	s.SetStep(ctx, domain.StepFundraising)

	reloaded := store.NewConfigStore(ctx, persister, clockwork.NewRealClock(), zerolog.Nop())
	if reloaded.GetConfig().TemplateID != "family-fun-6" || !reloaded.GetConfig().SkipRoundConfiguration {
		t.Fatalf("expected config rehydrated, got %#v", reloaded.GetConfig())
	}
	if reloaded.GetStep() != domain.StepFundraising {
		t.Fatalf("expected step rehydrated, got %s", reloaded.GetStep())
	}
	if reloaded.SessionIDs() != s.SessionIDs() {
		t.Fatalf("expected session ids rehydrated")
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	ch, cancel := s.Subscribe()
	defer cancel()

	<-ch // initial snapshot

	tplID := "classic-pub-6"
	s.UpdateConfig(ctx, domain.ConfigPatch{TemplateID: &tplID})

	update := <-ch
	if update.TemplateID != "classic-pub-6" {
		t.Fatalf("expected update with template id, got %#v", update)
	}
}
