package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"quiz-setup-service/internal/domain"
)

// SnapshotPersister writes the encoded wizard snapshot to durable storage.
// Persistence is best-effort: a failed write is logged and never retried;
// the next successful write re-synchronizes the stored copy.
type SnapshotPersister interface {
	Save(ctx context.Context, raw []byte) error
	Load(ctx context.Context) ([]byte, bool, error)
	Purge(ctx context.Context) error
}

// ConfigStore holds the in-progress SetupConfig, the current wizard step and
// the session identifiers for one wizard session. Exactly one session
// mutates it at a time by construction; the mutex guards the read-then-write
// merge against the websocket broadcaster.
type ConfigStore struct {
	persister SnapshotPersister
	clock     clockwork.Clock
	log       zerolog.Logger

	mu          sync.RWMutex
	config      domain.SetupConfig
	step        domain.WizardStep
	sessionIDs  domain.SessionIdentifiers
	subscribers map[chan domain.SetupConfig]struct{}
}

// NewConfigStore builds a store and hydrates it from the persister. A
// missing, corrupt or outdated snapshot degrades to an empty configuration
// on the setup step; hydration never fails startup.
func NewConfigStore(ctx context.Context, persister SnapshotPersister, clock clockwork.Clock, log zerolog.Logger) *ConfigStore {
	s := &ConfigStore{
		persister:   persister,
		clock:       clock,
		log:         log,
		step:        domain.StepSetup,
		subscribers: make(map[chan domain.SetupConfig]struct{}),
	}

	raw, found, err := persister.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("snapshot load failed, starting empty")
	} else if found {
		snap := DecodeSnapshot(raw, log)
		s.config = snap.Config
		s.step = snap.Step
		if snap.SessionIDs != nil {
			s.sessionIDs = *snap.SessionIDs
		}
	}
	if s.sessionIDs.PreRoomID == "" {
		s.sessionIDs.PreRoomID = uuid.NewString()
	}
	return s
}

// GetConfig returns a copy of the current configuration.
func (s *ConfigStore) GetConfig() domain.SetupConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration wholesale. Used only on initial
// hydration paths; step views merge instead.
func (s *ConfigStore) SetConfig(ctx context.Context, cfg domain.SetupConfig) {
	s.mu.Lock()
	s.config = cfg
	updated := s.config
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify(updated)
}

// UpdateConfig merges a patch into the configuration: pointer and nested
// patch fields merge, non-nil slices replace wholesale, and the free-form
// fundraising map deep-merges with arrays replaced.
func (s *ConfigStore) UpdateConfig(ctx context.Context, patch domain.ConfigPatch) domain.SetupConfig {
	s.mu.Lock()
	s.config = applyPatch(s.config, patch)
	updated := s.config
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify(updated)
	return updated
}

// GetStep returns the current wizard step.
func (s *ConfigStore) GetStep() domain.WizardStep {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.step
}

// SetStep assigns the current wizard step directly; the flow controller is
// the only expected caller.
func (s *ConfigStore) SetStep(ctx context.Context, step domain.WizardStep) {
	s.mu.Lock()
	s.step = step
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// SessionIDs returns the identifiers minted for this wizard session.
func (s *ConfigStore) SessionIDs() domain.SessionIdentifiers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionIDs
}

// SetRoomID records the room handle once the external deployment mints it.
func (s *ConfigStore) SetRoomID(ctx context.Context, roomID string) {
	s.mu.Lock()
	s.sessionIDs.RoomID = roomID
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// ResetConfig clears the configuration and returns the wizard to the setup
// step. Session identifiers survive when keepSessionIDs is set; otherwise a
// fresh pre-room id is minted.
func (s *ConfigStore) ResetConfig(ctx context.Context, keepSessionIDs bool) {
	s.mu.Lock()
	s.config = domain.SetupConfig{}
	s.step = domain.StepSetup
	if !keepSessionIDs {
		s.sessionIDs = domain.SessionIdentifiers{PreRoomID: uuid.NewString()}
	}
	updated := s.config
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify(updated)
}

// Purge clears in-memory state and invalidates the persisted snapshot, so
// the next load starts from nothing.
func (s *ConfigStore) Purge(ctx context.Context) {
	s.mu.Lock()
	s.config = domain.SetupConfig{}
	s.step = domain.StepSetup
	s.sessionIDs = domain.SessionIdentifiers{PreRoomID: uuid.NewString()}
	if err := s.persister.Purge(ctx); err != nil {
		s.log.Warn().Err(err).Msg("snapshot purge failed")
	}
	updated := s.config
	s.mu.Unlock()
	s.notify(updated)
}

// Subscribe returns a channel receiving the configuration after every
// change. The caller must invoke the returned cancel function.
func (s *ConfigStore) Subscribe() (<-chan domain.SetupConfig, func()) {
	ch := make(chan domain.SetupConfig, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.config
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *ConfigStore) notify(cfg domain.SetupConfig) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- cfg:
		default:
			// Drop the stale update so a slow subscriber never blocks a write.
			select {
			case <-ch:
			default:
			}
			ch <- cfg
		}
	}
}

func (s *ConfigStore) persistLocked(ctx context.Context) {
	ids := s.sessionIDs
	raw, err := EncodeSnapshot(Snapshot{
		Version:    SchemaVersion,
		Step:       s.step,
		Config:     s.config,
		SessionIDs: &ids,
		UpdatedAt:  s.clock.Now(),
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("snapshot encode failed")
		return
	}
	if err := s.persister.Save(ctx, raw); err != nil {
		s.log.Warn().Err(err).Msg("snapshot save failed, keeping in-memory state")
	}
}
