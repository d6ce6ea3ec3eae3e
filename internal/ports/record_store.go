package ports

import (
	"context"
	"errors"
	"fleet-ledger-service/internal/domain"
)

// ErrNotFound is returned by Get lookups for an unknown id.
var ErrNotFound = errors.New("record not found")

// Port: truck records.
type TruckRepository interface {
	ListTrucks(ctx context.Context) ([]domain.Truck, error)
	GetTruck(ctx context.Context, id string) (domain.Truck, error)
	// Upsert assigns an id when t.ID is empty and returns the stored record.
	UpsertTruck(ctx context.Context, t domain.Truck) (domain.Truck, error)
	DeleteTruck(ctx context.Context, id string) error
}

type DriverRepository interface {
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	GetDriver(ctx context.Context, id string) (domain.Driver, error)
	UpsertDriver(ctx context.Context, d domain.Driver) (domain.Driver, error)
	DeleteDriver(ctx context.Context, id string) error
}

// Port: completed trips.
type EntryRepository interface {
	ListEntries(ctx context.Context) ([]domain.Entry, error)
	GetEntry(ctx context.Context, id string) (domain.Entry, error)
	UpsertEntry(ctx context.Context, e domain.Entry) (domain.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

type PlanificationRepository interface {
	ListPlanifications(ctx context.Context) ([]domain.Planification, error)
	GetPlanification(ctx context.Context, id string) (domain.Planification, error)
	UpsertPlanification(ctx context.Context, p domain.Planification) (domain.Planification, error)
	DeletePlanification(ctx context.Context, id string) error
}

// Port: the settings singleton. A store with no settings record returns
// domain.DefaultSettings().
type SettingsRepository interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, s domain.Settings) error
}

// RecordStore is the full document store the engine reads snapshots from.
type RecordStore interface {
	TruckRepository
	DriverRepository
	EntryRepository
	PlanificationRepository
	SettingsRepository
}
