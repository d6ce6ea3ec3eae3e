package services

import (
	"fleet-ledger-service/internal/domain"
	"slices"
)

// ScopeKeyFunc names the unit that absorbs a truck's daily fixed charges
// once.
type ScopeKeyFunc func(e domain.Entry) string

// ByTruckDay is the default scope: one truck on one calendar day.
func ByTruckDay(e domain.Entry) string {
	return e.TruckID + "|" + e.Date.String()
}

// FirstTripFlags marks, for each scope key, the single entry that carries
// the fixed charges. Within a key the first trip is the one with the
// earliest CreatedAt; entries without CreatedAt come after timestamped
// ones, and remaining ties keep input order. The result is aligned with
// entries. A nil key means ByTruckDay.
func FirstTripFlags(entries []domain.Entry, key ScopeKeyFunc) []bool {
	if key == nil {
		key = ByTruckDay
	}

	flags := make([]bool, len(entries))
	first := make(map[string]int, len(entries))

	for i, e := range entries {
		k := key(e)
		best, seen := first[k]
		if !seen || createdBefore(e, i, entries[best], best) {
			first[k] = i
		}
	}

	for _, i := range first {
		flags[i] = true
	}
	return flags
}

func createdBefore(a domain.Entry, ai int, b domain.Entry, bi int) bool {
	switch {
	case a.CreatedAt != nil && b.CreatedAt != nil:
		if !a.CreatedAt.Equal(*b.CreatedAt) {
			return a.CreatedAt.Before(*b.CreatedAt)
		}
	case a.CreatedAt != nil:
		return true
	case b.CreatedAt != nil:
		return false
	}
	return ai < bi
}

// ChronologicalOrder returns the entries sorted by date, then by the same
// creation-order rule FirstTripFlags uses. The input is not modified.
func ChronologicalOrder(entries []domain.Entry) []domain.Entry {
	type indexed struct {
		e domain.Entry
		i int
	}

	tmp := make([]indexed, len(entries))
	for i, e := range entries {
		tmp[i] = indexed{e, i}
	}

	slices.SortStableFunc(tmp, func(a, b indexed) int {
		if c := a.e.Date.Compare(b.e.Date); c != 0 {
			return c
		}
		if createdBefore(a.e, a.i, b.e, b.i) {
			return -1
		}
		if createdBefore(b.e, b.i, a.e, a.i) {
			return 1
		}
		return 0
	})

	out := make([]domain.Entry, len(tmp))
	for i, t := range tmp {
		out[i] = t.e
	}
	return out
}
