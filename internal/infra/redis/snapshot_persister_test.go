package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestPersister(t *testing.T) (*SnapshotPersister, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSnapshotPersister(client, "session-1", time.Minute), mr
}

func TestSnapshotPersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestPersister(t)

	if _, found, err := p.Load(ctx); err != nil || found {
		t.Fatalf("expected empty load, found=%v err=%v", found, err)
	}

	if err := p.Save(ctx, []byte(`{"version":3}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("setup:snapshot:session-1") {
		t.Fatalf("expected redis key set")
	}

	raw, found, err := p.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if string(raw) != `{"version":3}` {
		t.Fatalf("unexpected payload %s", raw)
	}
}

func TestSnapshotPersisterPurge(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestPersister(t)

	if err := p.Save(ctx, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := p.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if mr.Exists("setup:snapshot:session-1") {
		t.Fatalf("expected key removed")
	}
}

func TestSnapshotPersisterTTL(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestPersister(t)

	if err := p.Save(ctx, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, found, err := p.Load(ctx); err != nil || found {
		t.Fatalf("expected snapshot expired, found=%v err=%v", found, err)
	}
}
