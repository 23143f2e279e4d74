package store

import (
	"testing"

	"github.com/rs/zerolog"
	"quiz-setup-service/internal/domain"
)

func TestDecodeSnapshotCurrentVersion(t *testing.T) {
	raw, err := EncodeSnapshot(Snapshot{
		Version: SchemaVersion,
		Step:    domain.StepPrizes,
		Config: domain.SetupConfig{
			TemplateID: "classic-pub-6",
			Rounds:     []domain.RoundDefinition{{RoundNumber: 1, RoundType: domain.RoundGeneralTrivia}},
		},
		SessionIDs: &domain.SessionIdentifiers{PreRoomID: "pre-1"},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	snap := DecodeSnapshot(raw, zerolog.Nop())
	if snap.Step != domain.StepPrizes {
		t.Fatalf("expected step prizes, got %s", snap.Step)
	}
	if snap.Config.TemplateID != "classic-pub-6" || len(snap.Config.Rounds) != 1 {
		t.Fatalf("expected config round-trip, got %#v", snap.Config)
	}
	if snap.SessionIDs == nil || snap.SessionIDs.PreRoomID != "pre-1" {
		t.Fatalf("expected session ids round-trip, got %#v", snap.SessionIDs)
	}
}

func TestDecodeSnapshotMigratesV1(t *testing.T) {
	// Unversioned legacy shape: skip flag under its old name, rounds in a
	// pre-numbering shape that no longer maps.
	raw := []byte(`{
		"step": "fundraising",
		"config": {
			"templateId": "classic-pub-6",
			"skipRounds": true,
			"host": {"name": "Alice"},
			"rounds": [{"type": "trivia"}]
		}
	}`)

	snap := DecodeSnapshot(raw, zerolog.Nop())
	if snap.Version != SchemaVersion {
		t.Fatalf("expected migrated version %d, got %d", SchemaVersion, snap.Version)
	}
	if snap.Step != domain.StepFundraising {
		t.Fatalf("expected step preserved, got %s", snap.Step)
	}
	if !snap.Config.SkipRoundConfiguration {
		t.Fatalf("expected old skip flag mapped")
	}
	if snap.Config.Host.Name != "Alice" {
		t.Fatalf("expected host preserved, got %#v", snap.Config.Host)
	}
	if len(snap.Config.Rounds) != 0 {
		t.Fatalf("expected v1 rounds defaulted to empty, got %#v", snap.Config.Rounds)
	}
}

func TestDecodeSnapshotMigratesV2SessionIDs(t *testing.T) {
	raw := []byte(`{
		"version": 2,
		"step": "rounds",
		"config": {"templateId": "family-fun-6"},
		"preRoomId": "pre-2",
		"roomId": "room-2"
	}`)

	snap := DecodeSnapshot(raw, zerolog.Nop())
	if snap.SessionIDs == nil || snap.SessionIDs.PreRoomID != "pre-2" || snap.SessionIDs.RoomID != "room-2" {
		t.Fatalf("expected flat ids regrouped, got %#v", snap.SessionIDs)
	}
	if snap.Config.TemplateID != "family-fun-6" {
		t.Fatalf("expected config preserved, got %#v", snap.Config)
	}
}

func TestDecodeSnapshotTotalOnGarbage(t *testing.T) {
	for _, raw := range [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"version": 3, "config": "not an object"}`),
		[]byte(`{"step": 42}`),
		[]byte(`{}`),
		nil,
	} {
		snap := DecodeSnapshot(raw, zerolog.Nop())
		if snap.Step != domain.StepSetup {
			t.Fatalf("expected garbage %q to degrade to setup, got %s", raw, snap.Step)
		}
		if len(snap.Config.Rounds) != 0 {
			t.Fatalf("expected empty config for %q", raw)
		}
	}
}

func TestDecodeSnapshotDefaultsUnknownStep(t *testing.T) {
	raw := []byte(`{"version": 3, "step": "lobby", "config": {}}`)
	snap := DecodeSnapshot(raw, zerolog.Nop())
	if snap.Step != domain.StepSetup {
		t.Fatalf("expected unknown step defaulted to setup, got %s", snap.Step)
	}
}
