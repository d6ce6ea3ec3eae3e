package services

import (
	"context"
	"fleet-ledger-service/internal/platform/obs"
	"fleet-ledger-service/internal/ports"
	"fmt"
	"log"
	"time"
)

// StatusSweeper applies the time-triggered planifie -> en_cours_chargement
// transition to every planification whose scheduled time has passed.
type StatusSweeper struct {
	Repo ports.PlanificationRepository
	// OnChange runs after at least one planification was updated.
	OnChange func(ctx context.Context) error
}

// Sweep returns the number of planifications moved to en_cours_chargement.
func (s *StatusSweeper) Sweep(ctx context.Context, now time.Time) (_ int, err error) {
	defer obs.Time(ctx, "planification.Sweep")(&err)

	plans, err := s.Repo.ListPlanifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep planifications: %w", err)
	}

	changed := 0
	for _, p := range plans {
		if !p.MarkLoadingIfDue(now) {
			continue
		}
		updated := now
		p.UpdatedAt = &updated
		if _, err := s.Repo.UpsertPlanification(ctx, p); err != nil {
			return changed, fmt.Errorf("sweep planifications: upsert id=%s: %w", p.ID, err)
		}
		log.Printf("planification id=%s status=%s", p.ID, p.Status)
		changed++
	}

	if changed > 0 && s.OnChange != nil {
		if err := s.OnChange(ctx); err != nil {
			return changed, fmt.Errorf("sweep planifications: %w", err)
		}
	}
	return changed, nil
}
