package repositories

import (
	"context"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/platform/db"
	"testing"
	"time"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSQLStore(conn, SQLite)
}

func TestSQLiteStoreEntryUpsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	created := time.Date(2026, 2, 4, 7, 30, 0, 0, time.UTC)
	in := domain.Entry{
		ID:                "e1",
		Date:              domain.Date{Year: 2026, Month: time.February, Day: 4},
		TruckID:           "T1",
		DriverID:          "D1",
		Origin:            domain.Place{Governorate: "Sfax", Delegation: "Sakiet"},
		Dest:              domain.Place{Governorate: "Tunis", Delegation: "Bardo"},
		Kilometers:        540,
		FuelLiters:        10,
		FuelPricePerLiter: domain.Price(0),
		DeliveryPrice:     100,
		CreatedAt:         &created,
	}
	if _, err := store.UpsertEntry(ctx, in); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	in.DeliveryPrice = 120
	if _, err := store.UpsertEntry(ctx, in); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	entries, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}

	got := entries[0]
	if got.DeliveryPrice != 120 || got.Route() != in.Route() || got.Date != in.Date {
		t.Fatalf("entry = %+v", got)
	}
	if got.FuelPricePerLiter == nil || *got.FuelPricePerLiter != 0 {
		t.Fatalf("explicit zero price lost")
	}
	if got.CreatedAt == nil || !got.CreatedAt.Equal(created) {
		t.Fatalf("createdAt = %v", got.CreatedAt)
	}
}

func TestSQLiteStorePlanificationAndSettings(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	sched := time.Date(2026, 2, 6, 6, 0, 0, 0, time.UTC)
	p := domain.Planification{Status: domain.StatusPlanned, ScheduledAt: &sched}
	p.ID = "p1"
	if err := p.SubmitStartPhotos(domain.PhotoSet{Dashboard: "a", FullTruck: "b", Document: "c", Cargo: "d"}); err != nil {
		t.Fatalf("start photos: %v", err)
	}
	if _, err := store.UpsertPlanification(ctx, p); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.GetPlanification(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusInProgress || got.StartPhotos != p.StartPhotos {
		t.Fatalf("planification = %+v", got)
	}

	if err := store.SaveSettings(ctx, domain.Settings{DefaultFuelPrice: 2.4}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	s, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if s.DefaultFuelPrice != 2.4 {
		t.Fatalf("settings = %+v", s)
	}

	if err := store.DeletePlanification(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	plans, _ := store.ListPlanifications(ctx)
	if len(plans) != 0 {
		t.Fatalf("plans after delete = %d", len(plans))
	}
}

func TestSQLiteStoreListsEntriesInCreationOrder(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	day := domain.Date{Year: 2026, Month: time.February, Day: 4}
	whole := time.Date(2026, 2, 4, 7, 0, 0, 0, time.UTC)
	half := whole.Add(500 * time.Millisecond)

	// ids sort opposite to creation so only created_at can order them.
	for _, e := range []domain.Entry{
		{ID: "a", Date: day, TruckID: "T1", CreatedAt: &half},
		{ID: "b", Date: day, TruckID: "T1", CreatedAt: &whole},
	} {
		if _, err := store.UpsertEntry(ctx, e); err != nil {
			t.Fatalf("upsert %s: %v", e.ID, err)
		}
	}

	entries, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "b" || entries[1].ID != "a" {
		t.Fatalf("order = %v, %v", entries[0].ID, entries[1].ID)
	}
}

func TestSQLiteStoreZeroFuelPriceKeepsDefault(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	if err := store.SaveSettings(ctx, domain.Settings{DefaultFuelPrice: 0}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	s, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if s.DefaultFuelPrice != domain.DefaultFuelPrice {
		t.Fatalf("settings = %+v", s)
	}
}
