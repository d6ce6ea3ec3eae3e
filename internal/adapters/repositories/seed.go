package repositories

import (
	"context"
	"encoding/json"
	"fleet-ledger-service/internal/ingest"
	"fleet-ledger-service/internal/ports"
	"fmt"
	"os"
)

// FleetSeed is the on-disk export format: raw documents per collection,
// as the admin panel stores them.
type FleetSeed struct {
	Trucks         []ingest.Doc `json:"camions"`
	Drivers        []ingest.Doc `json:"chauffeurs"`
	Entries        []ingest.Doc `json:"entries"`
	Planifications []ingest.Doc `json:"planifications"`
	Settings       ingest.Doc   `json:"settings"`
}

// SeedFromJSON loads an export file into store. Every document goes
// through the ingest boundary, so legacy shapes are coerced on the way in.
func SeedFromJSON(ctx context.Context, store ports.RecordStore, jsonPath string) error {
	f, err := os.Open(jsonPath)
	if err != nil {
		return fmt.Errorf("seed fleet: open %q: %w", jsonPath, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var data FleetSeed
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("seed fleet: parse json: %w", err)
	}

	return Seed(ctx, store, data)
}

func Seed(ctx context.Context, store ports.RecordStore, data FleetSeed) error {
	for i, d := range data.Trucks {
		t, err := ingest.ParseTruck(d)
		if err != nil {
			return fmt.Errorf("seed fleet: truck at index %d: %w", i+1, err)
		}
		if _, err := store.UpsertTruck(ctx, t); err != nil {
			return fmt.Errorf("seed fleet: %w", err)
		}
	}

	for i, d := range data.Drivers {
		drv, err := ingest.ParseDriver(d)
		if err != nil {
			return fmt.Errorf("seed fleet: driver at index %d: %w", i+1, err)
		}
		if _, err := store.UpsertDriver(ctx, drv); err != nil {
			return fmt.Errorf("seed fleet: %w", err)
		}
	}

	for i, d := range data.Entries {
		e, err := ingest.ParseEntry(d)
		if err != nil {
			return fmt.Errorf("seed fleet: entry at index %d: %w", i+1, err)
		}
		if _, err := store.UpsertEntry(ctx, e); err != nil {
			return fmt.Errorf("seed fleet: %w", err)
		}
	}

	for i, d := range data.Planifications {
		p, err := ingest.ParsePlanification(d)
		if err != nil {
			return fmt.Errorf("seed fleet: planification at index %d: %w", i+1, err)
		}
		if _, err := store.UpsertPlanification(ctx, p); err != nil {
			return fmt.Errorf("seed fleet: %w", err)
		}
	}

	if len(data.Settings) > 0 {
		if err := store.SaveSettings(ctx, ingest.ParseSettings(data.Settings)); err != nil {
			return fmt.Errorf("seed fleet: %w", err)
		}
	}

	return nil
}
