package services

import (
	"context"
	"errors"
	"fleet-ledger-service/internal/platform/obs"
	"fleet-ledger-service/internal/ports"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// LoadSnapshot fetches every collection the engine needs. Collections are
// read concurrently; the first I/O error cancels the rest and is returned.
func LoadSnapshot(ctx context.Context, store ports.RecordStore) (_ *ports.Snapshot, err error) {
	defer obs.Time(ctx, "snapshot.Load")(&err)

	if store == nil {
		return nil, errors.New("load snapshot: store is nil")
	}

	snap := &ports.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		trucks, err := store.ListTrucks(gctx)
		if err != nil {
			return fmt.Errorf("list trucks: %w", err)
		}
		snap.Trucks = trucks
		return nil
	})
	g.Go(func() error {
		drivers, err := store.ListDrivers(gctx)
		if err != nil {
			return fmt.Errorf("list drivers: %w", err)
		}
		snap.Drivers = drivers
		return nil
	})
	g.Go(func() error {
		entries, err := store.ListEntries(gctx)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		snap.Entries = entries
		return nil
	})
	g.Go(func() error {
		plans, err := store.ListPlanifications(gctx)
		if err != nil {
			return fmt.Errorf("list planifications: %w", err)
		}
		snap.Planifications = plans
		return nil
	})
	g.Go(func() error {
		settings, err := store.GetSettings(gctx)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}
		snap.Settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	snap.LoadedAt = time.Now()
	return snap, nil
}

// SnapshotService hands out the current snapshot, going to the store only
// on a cache miss or after Refresh. Cache is optional; without it every
// call loads.
type SnapshotService struct {
	Store ports.RecordStore
	Cache ports.SnapshotCache
}

func (s *SnapshotService) Current(ctx context.Context) (*ports.Snapshot, error) {
	if s.Cache != nil {
		snap, err := s.Cache.Get(ctx)
		if err == nil {
			return snap, nil
		}
		// A broken cache degrades to direct loads.
		if !errors.Is(err, ports.ErrCacheMiss) {
			log.Printf("snapshot cache get failed: err=%v", err)
		}
	}
	return s.reload(ctx)
}

// Refresh drops the cached copy and loads a fresh one.
func (s *SnapshotService) Refresh(ctx context.Context) (*ports.Snapshot, error) {
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			log.Printf("snapshot cache invalidate failed: err=%v", err)
		}
	}
	return s.reload(ctx)
}

// Invalidate is called after writes to the store.
func (s *SnapshotService) Invalidate(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotService) reload(ctx context.Context) (*ports.Snapshot, error) {
	snap, err := LoadSnapshot(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Put(ctx, snap); err != nil {
			log.Printf("snapshot cache put failed: err=%v", err)
		}
	}
	return snap, nil
}
