package services

import (
	"context"
	"fleet-ledger-service/internal/adapters/repositories"
	"fleet-ledger-service/internal/domain"
	"testing"
	"time"
)

func TestStatusSweeperMovesDuePlanifications(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()

	due := time.Date(2026, 2, 4, 6, 0, 0, 0, time.UTC)
	later := time.Date(2026, 2, 4, 18, 0, 0, 0, time.UTC)
	for _, p := range []domain.Planification{
		{Entry: domain.Entry{ID: "due", Date: day("2026-02-04")}, Status: domain.StatusPlanned, ScheduledAt: &due},
		{Entry: domain.Entry{ID: "later", Date: day("2026-02-04")}, Status: domain.StatusPlanned, ScheduledAt: &later},
		{Entry: domain.Entry{ID: "road", Date: day("2026-02-01")}, Status: domain.StatusInProgress},
	} {
		if _, err := store.UpsertPlanification(ctx, p); err != nil {
			t.Fatalf("UpsertPlanification: %v", err)
		}
	}

	notified := 0
	sweeper := &StatusSweeper{Repo: store, OnChange: func(context.Context) error { notified++; return nil }}

	now := time.Date(2026, 2, 4, 8, 0, 0, 0, time.UTC)
	n, err := sweeper.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 || notified != 1 {
		t.Fatalf("changed=%d notified=%d", n, notified)
	}

	got, err := store.GetPlanification(ctx, "due")
	if err != nil {
		t.Fatalf("GetPlanification: %v", err)
	}
	if got.Status != domain.StatusLoading || got.UpdatedAt == nil || !got.UpdatedAt.Equal(now) {
		t.Fatalf("due = %+v", got)
	}

	// Second pass has nothing left to move.
	if n, _ := sweeper.Sweep(ctx, now); n != 0 || notified != 1 {
		t.Fatalf("second sweep changed=%d notified=%d", n, notified)
	}
}
