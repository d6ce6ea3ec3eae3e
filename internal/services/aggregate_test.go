package services

import (
	"fleet-ledger-service/internal/domain"
	"math"
	"testing"
)

func TestAggregateForScopeEmpty(t *testing.T) {
	s := testCalc().AggregateForScope(nil, nil, nil)

	if s != (Stats{}) {
		t.Fatalf("empty aggregate = %+v, want zero value", s)
	}
	for _, v := range []float64{s.CostPerKm, s.ConsumptionL100km, s.PerformancePct} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite ratio in %+v", s)
		}
	}
}

func TestAggregateForScopeRatios(t *testing.T) {
	entries := []domain.Entry{
		{ID: "a", Date: day("2026-02-04"), TruckID: "T1", Kilometers: 400, FuelLiters: 120, DeliveryPrice: 1200, Maintenance: 50},
		{ID: "b", Date: day("2026-02-05"), TruckID: "T1", Kilometers: 100, FuelLiters: 30, DeliveryPrice: 300},
	}

	s := testCalc().AggregateForScope(entries, []domain.Truck{t1}, nil)

	// Two distinct days: fixed charges twice. Fuel 150 L at 2.
	wantCost := 300.0 + 50 + 2*532
	if !near(s.TotalCost, wantCost) {
		t.Fatalf("total cost = %v, want %v", s.TotalCost, wantCost)
	}
	if !near(s.TotalRevenue, 1500) || !near(s.Result, 1500-wantCost) {
		t.Fatalf("revenue/result = %v/%v", s.TotalRevenue, s.Result)
	}
	if !near(s.CostPerKm, wantCost/500) {
		t.Fatalf("cost per km = %v", s.CostPerKm)
	}
	if !near(s.ConsumptionL100km, 30) {
		t.Fatalf("consumption = %v, want 30", s.ConsumptionL100km)
	}
	if !near(s.PerformancePct, (1500-wantCost)/1500*100) {
		t.Fatalf("performance = %v", s.PerformancePct)
	}
}

func TestAggregateForScopeZeroDenominators(t *testing.T) {
	entries := []domain.Entry{{ID: "a", TruckID: "T1", FuelLiters: 10}}

	s := testCalc().AggregateForScope(entries, nil, nil)
	if s.CostPerKm != 0 || s.ConsumptionL100km != 0 || s.PerformancePct != 0 {
		t.Fatalf("ratios with zero km and revenue = %+v", s)
	}
	if !near(s.Result, -20) {
		t.Fatalf("result = %v, want -20", s.Result)
	}
}

func TestAggregateCustomScopeKey(t *testing.T) {
	entries := []domain.Entry{
		{ID: "a", Date: day("2026-02-04"), TruckID: "T1"},
		{ID: "b", Date: day("2026-02-05"), TruckID: "T1"},
	}
	perTruck := func(e domain.Entry) string { return e.TruckID }

	s := testCalc().AggregateForScope(entries, []domain.Truck{t1}, perTruck)
	if !near(s.TotalFixedCharges, 532) {
		t.Fatalf("fixed charges under per-truck scope = %v, want 532", s.TotalFixedCharges)
	}
}
