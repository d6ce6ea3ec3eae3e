package ports

import (
	"context"
	"errors"
	"fleet-ledger-service/internal/domain"
	"time"
)

// ErrCacheMiss is returned by SnapshotCache.Get when nothing is cached.
var ErrCacheMiss = errors.New("snapshot cache miss")

// Snapshot is an immutable, caller-owned copy of the records one
// aggregation pass reads.
type Snapshot struct {
	Trucks         []domain.Truck
	Drivers        []domain.Driver
	Entries        []domain.Entry
	Planifications []domain.Planification
	Settings       domain.Settings
	LoadedAt       time.Time
}

// Boundary for keeping a loaded snapshot between refreshes.
type SnapshotCache interface {
	Get(ctx context.Context) (*Snapshot, error)
	Put(ctx context.Context, s *Snapshot) error
	// Invalidate drops the cached snapshot so the next read reloads.
	Invalidate(ctx context.Context) error
}
