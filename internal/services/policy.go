package services

import "fleet-ledger-service/internal/domain"

// FinancialPolicy decides which records feed revenue and cost KPIs.
// Plain entries and termine planifications always count; annule never
// does. Trips still awaiting admin confirmation count only when
// IncludeAwaitingConfirmation is set.
type FinancialPolicy struct {
	IncludeAwaitingConfirmation bool
}

func (p FinancialPolicy) Includes(s domain.Status) bool {
	switch s {
	case domain.StatusDone:
		return true
	case domain.StatusAwaitingConfirmation:
		return p.IncludeAwaitingConfirmation
	default:
		return false
	}
}

// FinancialEntries merges completed entries with the planifications the
// policy admits. A planification whose id already exists as an entry is
// skipped so a confirmed trip is not counted twice.
func FinancialEntries(entries []domain.Entry, plans []domain.Planification, p FinancialPolicy) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries)+len(plans))
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	for _, pl := range plans {
		if !p.Includes(pl.Status) {
			continue
		}
		if _, dup := seen[pl.ID]; dup {
			continue
		}
		out = append(out, pl.Entry)
	}
	return out
}

// Filter keeps entries matching keep, preserving order.
func Filter(entries []domain.Entry, keep func(domain.Entry) bool) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// ScopeToDriver is the driver-role view. An empty id keeps everything.
func ScopeToDriver(entries []domain.Entry, driverID string) []domain.Entry {
	if driverID == "" {
		return entries
	}
	return Filter(entries, func(e domain.Entry) bool { return e.DriverID == driverID })
}

func FilterByTruck(entries []domain.Entry, truckID string) []domain.Entry {
	return Filter(entries, func(e domain.Entry) bool { return e.TruckID == truckID })
}

func FilterByDate(entries []domain.Entry, d domain.Date) []domain.Entry {
	return Filter(entries, func(e domain.Entry) bool { return e.Date == d })
}

// FilterByPeriod keeps [from, to]; zero bounds are open.
func FilterByPeriod(entries []domain.Entry, from, to domain.Date) []domain.Entry {
	return Filter(entries, func(e domain.Entry) bool { return e.Date.Between(from, to) })
}
