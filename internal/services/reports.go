package services

import (
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/ports"
)

// Reports is the single entry point every KPI view goes through. It
// binds one snapshot and one policy; a refresh means building a new
// Reports from a new snapshot.
type Reports struct {
	calc    Calculator
	trucks  []domain.Truck
	drivers []domain.Driver
	entries []domain.Entry
}

func NewReports(snap *ports.Snapshot, policy FinancialPolicy) *Reports {
	if snap == nil {
		snap = &ports.Snapshot{Settings: domain.DefaultSettings()}
	}
	return &Reports{
		calc:    NewCalculator(snap.Settings),
		trucks:  snap.Trucks,
		drivers: snap.Drivers,
		entries: FinancialEntries(snap.Entries, snap.Planifications, policy),
	}
}

// Period bounds a report; zero dates are open.
type Period struct {
	From domain.Date
	To   domain.Date
}

func (r *Reports) scoped(driverID string, p Period) []domain.Entry {
	return FilterByPeriod(ScopeToDriver(r.entries, driverID), p.From, p.To)
}

func (r *Reports) TruckStats(truckID string, p Period) Stats {
	return r.calc.AggregateForScope(FilterByTruck(r.scoped("", p), truckID), r.trucks, nil)
}

func (r *Reports) DriverStats(driverID string, p Period) Stats {
	return r.calc.AggregateForScope(r.scoped(driverID, p), r.trucks, nil)
}

type DashboardKPIs struct {
	Date          domain.Date
	Stats         Stats
	ActiveTrucks  int
	ActiveDrivers int
	TopTrucks     []Ranked
	Trips         []PricedEntry
}

// Dashboard is the day view. A non-empty driverID restricts it to that
// driver's trips before anything is computed.
func (r *Reports) Dashboard(day domain.Date, driverID string) DashboardKPIs {
	entries := ChronologicalOrder(FilterByDate(ScopeToDriver(r.entries, driverID), day))

	trucks := make(map[string]struct{})
	drivers := make(map[string]struct{})
	for _, e := range entries {
		if e.TruckID != "" {
			trucks[e.TruckID] = struct{}{}
		}
		if e.DriverID != "" {
			drivers[e.DriverID] = struct{}{}
		}
	}

	return DashboardKPIs{
		Date:          day,
		Stats:         r.calc.AggregateForScope(entries, r.trucks, nil),
		ActiveTrucks:  len(trucks),
		ActiveDrivers: len(drivers),
		TopTrucks:     r.calc.RankEntities(entries, r.trucks, ByTruck),
		Trips:         r.calc.Price(entries, r.trucks, nil),
	}
}

func (r *Reports) Ranking(groupBy GroupFunc, driverID string, p Period) []Ranked {
	return r.calc.RankEntities(r.scoped(driverID, p), r.trucks, groupBy)
}

func (r *Reports) TimeSeries(anchor domain.Date, days int, driverID string) []DailyPoint {
	return r.calc.TimeSeries(ScopeToDriver(r.entries, driverID), r.trucks, days, anchor)
}

func (r *Reports) Trajectory(q TrajectoryQuery) TrajectoryReport {
	return r.calc.TrajectoryStats(r.entries, r.trucks, q)
}

// TruckLabel returns the plate of a truck, or "" when unknown.
func (r *Reports) TruckLabel(id string) string {
	for _, t := range r.trucks {
		if t.ID == id {
			return t.Matricule
		}
	}
	return ""
}

// DriverName returns "" for unknown drivers; presentation decides the
// placeholder.
func (r *Reports) DriverName(id string) string {
	for _, d := range r.drivers {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}
