package services

import (
	"context"
	"errors"
	"fleet-ledger-service/internal/adapters/repositories"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/ports"
	"testing"
)

type failingStore struct {
	*repositories.MemoryStore
}

var errBoom = errors.New("boom")

func (failingStore) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	return nil, errBoom
}

type fakeCache struct {
	snap    *ports.Snapshot
	getErr  error
	puts    int
	dropped int
}

func (c *fakeCache) Get(ctx context.Context) (*ports.Snapshot, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.snap == nil {
		return nil, ports.ErrCacheMiss
	}
	return c.snap, nil
}

func (c *fakeCache) Put(ctx context.Context, s *ports.Snapshot) error {
	c.puts++
	c.snap = s
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.dropped++
	c.snap = nil
	return nil
}

func seededStore(t *testing.T) *repositories.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := repositories.NewMemoryStore()

	if _, err := store.UpsertTruck(ctx, t1); err != nil {
		t.Fatalf("UpsertTruck: %v", err)
	}
	if _, err := store.UpsertEntry(ctx, domain.Entry{ID: "e1", Date: day("2026-02-04"), TruckID: "T1"}); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if err := store.SaveSettings(ctx, domain.Settings{DefaultFuelPrice: 2.5}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	return store
}

func TestLoadSnapshot(t *testing.T) {
	snap, err := LoadSnapshot(context.Background(), seededStore(t))
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Trucks) != 1 || len(snap.Entries) != 1 || snap.Settings.DefaultFuelPrice != 2.5 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.LoadedAt.IsZero() {
		t.Fatalf("LoadedAt not set")
	}
}

func TestLoadSnapshotPropagatesStoreError(t *testing.T) {
	_, err := LoadSnapshot(context.Background(), failingStore{seededStore(t)})
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestSnapshotServiceUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCache{}
	svc := &SnapshotService{Store: seededStore(t), Cache: cache}

	first, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	second, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if first != second || cache.puts != 1 {
		t.Fatalf("expected cached snapshot, puts=%d", cache.puts)
	}

	if _, err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if cache.dropped != 1 || cache.puts != 2 {
		t.Fatalf("refresh dropped=%d puts=%d", cache.dropped, cache.puts)
	}
}

func TestSnapshotServiceBrokenCacheFallsBack(t *testing.T) {
	svc := &SnapshotService{Store: seededStore(t), Cache: &fakeCache{getErr: errors.New("conn refused")}}

	snap, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if len(snap.Entries) != 1 {
		t.Fatalf("entries = %d", len(snap.Entries))
	}
}

func TestSnapshotServiceWithoutCache(t *testing.T) {
	svc := &SnapshotService{Store: seededStore(t)}

	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := svc.Current(context.Background()); err != nil {
		t.Fatalf("Current: %v", err)
	}
}
