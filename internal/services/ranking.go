package services

import (
	"fleet-ledger-service/internal/domain"
	"slices"
)

// GroupFunc maps an entry to its ranking group. An empty key drops the
// entry from the ranking.
type GroupFunc func(e domain.Entry) string

func ByTruck(e domain.Entry) string  { return e.TruckID }
func ByDriver(e domain.Entry) string { return e.DriverID }

// ByRoute groups on the exact governorate/delegation pairs. Trips with no
// geographic destination are skipped.
func ByRoute(e domain.Entry) string {
	if e.Dest.IsZero() {
		return ""
	}
	return e.Route().Key()
}

type Ranked struct {
	Key   string
	Stats Stats
}

// RankEntities folds each group separately (first-trip flags are derived
// within the group) and orders groups by Result, highest first. Equal
// results keep the order in which the groups first appear in entries.
func (c Calculator) RankEntities(entries []domain.Entry, trucks []domain.Truck, groupBy GroupFunc) []Ranked {
	order := make([]string, 0)
	groups := make(map[string][]domain.Entry)

	for _, e := range entries {
		k := groupBy(e)
		if k == "" {
			continue
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	ranked := make([]Ranked, 0, len(order))
	for _, k := range order {
		ranked = append(ranked, Ranked{Key: k, Stats: c.AggregateForScope(groups[k], trucks, nil)})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		switch {
		case a.Stats.Result > b.Stats.Result:
			return -1
		case a.Stats.Result < b.Stats.Result:
			return 1
		default:
			return 0
		}
	})
	return ranked
}
