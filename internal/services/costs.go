package services

import "fleet-ledger-service/internal/domain"

// EntryCosts is the derived cost breakdown of one trip. It is never
// persisted.
type EntryCosts struct {
	FuelCost     float64
	Maintenance  float64
	FixedCharges float64
	TotalCost    float64
	Result       float64
}

// Calculator turns trips into costs and folds them into statistics.
// It is pure: no I/O, no shared state, and it never mutates its input.
type Calculator struct {
	// DefaultFuelPrice applies only to entries that omit their own price.
	DefaultFuelPrice float64
}

func NewCalculator(s domain.Settings) Calculator {
	return Calculator{DefaultFuelPrice: s.DefaultFuelPrice}
}

// Compute the cost breakdown of a trip. A nil truck contributes no fixed
// charges; the daily charges of a present truck are added only when the
// trip is the first of its scope (see FirstTripFlags).
func (c Calculator) Compute(e domain.Entry, truck *domain.Truck, firstTripOfDay bool) EntryCosts {
	out := EntryCosts{
		FuelCost:    e.FuelLiters * e.FuelPrice(c.DefaultFuelPrice),
		Maintenance: e.Maintenance,
	}

	if truck != nil && firstTripOfDay {
		out.FixedCharges = truck.DailyFixedCharges()
	}

	out.TotalCost = out.FuelCost + out.Maintenance + out.FixedCharges
	out.Result = e.DeliveryPrice - out.TotalCost
	return out
}

// ComputeCosts uses the global default fuel price.
func ComputeCosts(e domain.Entry, truck *domain.Truck, firstTripOfDay bool) EntryCosts {
	return Calculator{DefaultFuelPrice: domain.DefaultFuelPrice}.Compute(e, truck, firstTripOfDay)
}

func indexTrucks(trucks []domain.Truck) map[string]*domain.Truck {
	m := make(map[string]*domain.Truck, len(trucks))
	for i := range trucks {
		m[trucks[i].ID] = &trucks[i]
	}
	return m
}

// costsFor prices every entry, deriving first-trip flags over exactly
// this set. Unknown truck ids resolve to nil.
func (c Calculator) costsFor(entries []domain.Entry, trucks []domain.Truck, key ScopeKeyFunc) []EntryCosts {
	byID := indexTrucks(trucks)
	flags := FirstTripFlags(entries, key)

	out := make([]EntryCosts, len(entries))
	for i, e := range entries {
		out[i] = c.Compute(e, byID[e.TruckID], flags[i])
	}
	return out
}
