package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotPersister stores the wizard snapshot as a single Redis value so a
// session survives reloads. The TTL bounds how long an abandoned wizard
// session lingers.
type SnapshotPersister struct {
	client     *redis.Client
	sessionKey string
	ttl        time.Duration
}

func NewSnapshotPersister(client *redis.Client, sessionKey string, ttl time.Duration) *SnapshotPersister {
	return &SnapshotPersister{client: client, sessionKey: sessionKey, ttl: ttl}
}

func (p *SnapshotPersister) Save(ctx context.Context, raw []byte) error {
	if err := p.client.Set(ctx, p.key(), raw, p.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (p *SnapshotPersister) Load(ctx context.Context) ([]byte, bool, error) {
	raw, err := p.client.Get(ctx, p.key()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return raw, true, nil
}

func (p *SnapshotPersister) Purge(ctx context.Context) error {
	if err := p.client.Del(ctx, p.key()).Err(); err != nil {
		return fmt.Errorf("purge snapshot: %w", err)
	}
	return nil
}

func (p *SnapshotPersister) key() string {
	return "setup:snapshot:" + p.sessionKey
}
