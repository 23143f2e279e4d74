package memory

import (
	"context"
	"sync"
)

// SnapshotPersister keeps the wizard snapshot in process memory; it is the
// persister used when no Redis is configured, and in tests. State survives
// store rebuilds within one process but not restarts.
type SnapshotPersister struct {
	mu    sync.RWMutex
	raw   []byte
	saved bool
}

func NewSnapshotPersister() *SnapshotPersister {
	return &SnapshotPersister{}
}

func (p *SnapshotPersister) Save(_ context.Context, raw []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw = append([]byte(nil), raw...)
	p.saved = true
	return nil
}

func (p *SnapshotPersister) Load(_ context.Context) ([]byte, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.saved {
		return nil, false, nil
	}
	return append([]byte(nil), p.raw...), true, nil
}

func (p *SnapshotPersister) Purge(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw = nil
	p.saved = false
	return nil
}
