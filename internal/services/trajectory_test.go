package services

import (
	"fleet-ledger-service/internal/domain"
	"testing"
)

func TestTrajectoryStatsRanksDrivers(t *testing.T) {
	route := domain.Route{
		From: domain.Place{Governorate: "Sfax", Delegation: "Sakiet"},
		To:   domain.Place{Governorate: "Tunis", Delegation: "Bardo"},
	}
	other := domain.Route{From: route.From, To: domain.Place{Governorate: "Tunis", Delegation: "Carthage"}}

	on := func(id, driver, truck, date string, km, revenue float64) domain.Entry {
		return domain.Entry{ID: id, Date: day(date), DriverID: driver, TruckID: truck, Origin: route.From, Dest: route.To, Kilometers: km, DeliveryPrice: revenue}
	}
	entries := []domain.Entry{
		on("1", "D1", "T9", "2026-02-01", 270, 300),
		on("2", "D2", "T8", "2026-02-01", 270, 500),
		on("3", "D1", "T9", "2026-02-02", 270, 100),
		{ID: "4", DriverID: "D3", Origin: other.From, Dest: other.To, DeliveryPrice: 5000},
	}

	r := testCalc().TrajectoryStats(entries, nil, TrajectoryQuery{DriverID: "D1", Route: route})

	if r.Overall.TripCount != 3 || !near(r.Overall.AvgKm, 270) || !near(r.Overall.AvgRevenue, 300) {
		t.Fatalf("overall = %+v", r.Overall)
	}
	if r.Subject.TripCount != 2 || !near(r.Subject.AvgResult, 200) {
		t.Fatalf("subject = %+v", r.Subject)
	}
	if len(r.Drivers) != 2 || r.Drivers[0].DriverID != "D2" || r.Drivers[1].DriverID != "D1" {
		t.Fatalf("drivers = %+v", r.Drivers)
	}
	if r.DriverRank != 2 {
		t.Fatalf("rank = %d, want 2", r.DriverRank)
	}
}

func TestTrajectoryStatsUnknownRoute(t *testing.T) {
	r := testCalc().TrajectoryStats(nil, nil, TrajectoryQuery{DriverID: "D1", Route: domain.Route{To: domain.Place{Governorate: "Gafsa"}}})

	if r.Overall != (RouteAverages{}) || r.DriverRank != 0 || len(r.Drivers) != 0 {
		t.Fatalf("report = %+v", r)
	}
}

func TestTrajectoryStatsByTruck(t *testing.T) {
	route := domain.Route{To: domain.Place{Governorate: "Tunis", Delegation: "Bardo"}}
	entries := []domain.Entry{
		{ID: "1", TruckID: "T1", Dest: route.To, DeliveryPrice: 100},
		{ID: "2", TruckID: "T2", Dest: route.To, DeliveryPrice: 300},
	}

	r := testCalc().TrajectoryStats(entries, nil, TrajectoryQuery{TruckID: "T2", Route: route})
	if r.Subject.TripCount != 1 || !near(r.Subject.AvgRevenue, 300) {
		t.Fatalf("subject = %+v", r.Subject)
	}
	if r.DriverRank != 0 {
		t.Fatalf("rank without driver query = %d", r.DriverRank)
	}
}

func TestTrajectoryStatsDriverWinsOverTruck(t *testing.T) {
	route := domain.Route{To: domain.Place{Governorate: "Tunis", Delegation: "Bardo"}}
	entries := []domain.Entry{
		{ID: "1", DriverID: "D1", TruckID: "T1", Dest: route.To, DeliveryPrice: 100},
		{ID: "2", DriverID: "D2", TruckID: "T2", Dest: route.To, DeliveryPrice: 300},
	}

	r := testCalc().TrajectoryStats(entries, nil, TrajectoryQuery{DriverID: "D1", TruckID: "T2", Route: route})
	if r.Subject.TripCount != 1 || !near(r.Subject.AvgRevenue, 100) {
		t.Fatalf("subject = %+v", r.Subject)
	}
}
