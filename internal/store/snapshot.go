package store

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"quiz-setup-service/internal/domain"
)

// SchemaVersion is the current persisted snapshot version.
//
// History:
//
//	v1 — unversioned: {step, config}; rounds stored pre-numbering, skip flag
//	     named "skipRounds".
//	v2 — {version, step, config} with flat preRoomId/roomId at the top level.
//	v3 — current: session identifiers grouped under "sessionIds".
const SchemaVersion = 3

// Snapshot is the persisted shape of one wizard session.
type Snapshot struct {
	Version    int                        `json:"version"`
	Step       domain.WizardStep          `json:"step"`
	Config     domain.SetupConfig         `json:"config"`
	SessionIDs *domain.SessionIdentifiers `json:"sessionIds,omitempty"`
	UpdatedAt  time.Time                  `json:"updatedAt,omitempty"`
}

// EncodeSnapshot serializes a snapshot for the persister.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot reads a persisted snapshot of any known version, migrating
// older shapes into the current field set. Decoding is total: malformed or
// partially-missing input degrades to an empty configuration on the setup
// step rather than failing startup.
func DecodeSnapshot(raw []byte, log zerolog.Logger) Snapshot {
	empty := Snapshot{Version: SchemaVersion, Step: domain.StepSetup}

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		log.Warn().Err(err).Msg("corrupt snapshot, starting empty")
		return empty
	}

	var snap Snapshot
	switch {
	case probe.Version >= SchemaVersion:
		if err := json.Unmarshal(raw, &snap); err != nil {
			log.Warn().Err(err).Msg("unreadable snapshot, starting empty")
			return empty
		}
	case probe.Version == 2:
		snap = migrateV2(raw, log)
	default:
		snap = migrateV1(raw, log)
	}

	snap.Version = SchemaVersion
	// Unknown step values resolve to setup.
	snap.Step = domain.StepAt(snap.Step.Index())
	return snap
}

func migrateV2(raw []byte, log zerolog.Logger) Snapshot {
	var old struct {
		Step      domain.WizardStep  `json:"step"`
		Config    domain.SetupConfig `json:"config"`
		PreRoomID string             `json:"preRoomId"`
		RoomID    string             `json:"roomId"`
	}
	if err := json.Unmarshal(raw, &old); err != nil {
		log.Warn().Err(err).Msg("unreadable v2 snapshot, starting empty")
		return Snapshot{Step: domain.StepSetup}
	}
	snap := Snapshot{Step: old.Step, Config: old.Config}
	if old.PreRoomID != "" || old.RoomID != "" {
		snap.SessionIDs = &domain.SessionIdentifiers{PreRoomID: old.PreRoomID, RoomID: old.RoomID}
	}
	return snap
}

func migrateV1(raw []byte, log zerolog.Logger) Snapshot {
	var old struct {
		Step   domain.WizardStep `json:"step"`
		Config struct {
			TemplateID string             `json:"templateId"`
			SkipRounds bool               `json:"skipRounds"`
			Host       domain.HostInfo    `json:"host"`
			Payment    domain.PaymentInfo `json:"payment"`
		} `json:"config"`
	}
	if err := json.Unmarshal(raw, &old); err != nil {
		log.Warn().Err(err).Msg("unreadable v1 snapshot, starting empty")
		return Snapshot{Step: domain.StepSetup}
	}
	// v1 rounds predate contiguous numbering and do not map onto the current
	// shape; they default to empty, as do the fragments v1 never carried.
	return Snapshot{
		Step: old.Step,
		Config: domain.SetupConfig{
			TemplateID:             old.Config.TemplateID,
			SkipRoundConfiguration: old.Config.SkipRounds,
			Host:                   old.Config.Host,
			Payment:                old.Config.Payment,
		},
	}
}
