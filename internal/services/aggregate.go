package services

import "fleet-ledger-service/internal/domain"

// Stats is the fold of EntryCosts over a set of trips. The zero value is
// the well-defined result for an empty set.
type Stats struct {
	TripCount         int
	TotalKm           float64
	TotalFuelLiters   float64
	TotalFuelCost     float64
	TotalMaintenance  float64
	TotalFixedCharges float64
	TotalCost         float64
	TotalRevenue      float64
	Result            float64

	CostPerKm         float64
	ConsumptionL100km float64
	PerformancePct    float64
}

func (s *Stats) add(e domain.Entry, c EntryCosts) {
	s.TripCount++
	s.TotalKm += e.Kilometers
	s.TotalFuelLiters += e.FuelLiters
	s.TotalFuelCost += c.FuelCost
	s.TotalMaintenance += c.Maintenance
	s.TotalFixedCharges += c.FixedCharges
	s.TotalCost += c.TotalCost
	s.TotalRevenue += e.DeliveryPrice
	s.Result += c.Result
}

// finish derives the ratios. Each ratio is 0 when its denominator is.
func (s *Stats) finish() {
	s.CostPerKm = ratio(s.TotalCost, s.TotalKm)
	s.ConsumptionL100km = ratio(s.TotalFuelLiters, s.TotalKm) * 100
	s.PerformancePct = ratio(s.Result, s.TotalRevenue) * 100
}

func ratio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}

// AverageResult is Result per trip, 0 for an empty fold.
func (s Stats) AverageResult() float64 {
	if s.TripCount == 0 {
		return 0
	}
	return s.Result / float64(s.TripCount)
}

// AggregateForScope folds an already filtered entry set. Filtering (by
// driver, period, truck) must happen before this call because it changes
// which trip is first of its day. A nil key means ByTruckDay.
func (c Calculator) AggregateForScope(entries []domain.Entry, trucks []domain.Truck, key ScopeKeyFunc) Stats {
	costs := c.costsFor(entries, trucks, key)

	var s Stats
	for i, e := range entries {
		s.add(e, costs[i])
	}
	s.finish()
	return s
}

// PricedEntry pairs a trip with its costs inside one fold.
type PricedEntry struct {
	Entry domain.Entry
	Costs EntryCosts
	First bool
}

// Price returns each entry with its costs, in input order.
func (c Calculator) Price(entries []domain.Entry, trucks []domain.Truck, key ScopeKeyFunc) []PricedEntry {
	byID := indexTrucks(trucks)
	flags := FirstTripFlags(entries, key)

	out := make([]PricedEntry, len(entries))
	for i, e := range entries {
		out[i] = PricedEntry{Entry: e, Costs: c.Compute(e, byID[e.TruckID], flags[i]), First: flags[i]}
	}
	return out
}
