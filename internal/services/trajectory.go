package services

import (
	"fleet-ledger-service/internal/domain"
	"slices"
)

// TrajectoryQuery selects one exact route and, optionally, the driver or
// truck whose history on it is compared with the fleet. DriverID wins
// when both are set.
type TrajectoryQuery struct {
	DriverID string
	TruckID  string
	Route    domain.Route
}

func (q TrajectoryQuery) isSubject(e domain.Entry) bool {
	switch {
	case q.DriverID != "":
		return e.DriverID == q.DriverID
	case q.TruckID != "":
		return e.TruckID == q.TruckID
	default:
		return false
	}
}

// RouteAverages are per-trip means over a set of trips on one route.
type RouteAverages struct {
	TripCount       int
	AvgKm           float64
	AvgFuelLiters   float64
	AvgCost         float64
	AvgRevenue      float64
	AvgResult       float64
	ConsumptionL100 float64
}

type DriverRouteRank struct {
	DriverID  string
	TripCount int
	AvgResult float64
}

type TrajectoryReport struct {
	Route   domain.Route
	Overall RouteAverages

	// Subject covers only the trips of the queried driver or truck.
	Subject RouteAverages
	Drivers []DriverRouteRank

	// DriverRank is the 1-based position of the queried driver in Drivers,
	// 0 when no driver was queried or they never drove the route.
	DriverRank int
}

func averagesOf(s Stats) RouteAverages {
	if s.TripCount == 0 {
		return RouteAverages{}
	}
	n := float64(s.TripCount)
	return RouteAverages{
		TripCount:       s.TripCount,
		AvgKm:           s.TotalKm / n,
		AvgFuelLiters:   s.TotalFuelLiters / n,
		AvgCost:         s.TotalCost / n,
		AvgRevenue:      s.TotalRevenue / n,
		AvgResult:       s.Result / n,
		ConsumptionL100: s.ConsumptionL100km,
	}
}

// TrajectoryStats computes historical averages for an exact route match
// on all four geographic fields. Costs are derived over the route's trips
// only.
func (c Calculator) TrajectoryStats(entries []domain.Entry, trucks []domain.Truck, q TrajectoryQuery) TrajectoryReport {
	key := q.Route.Key()
	onRoute := make([]domain.Entry, 0)
	for _, e := range entries {
		if e.Route().Key() == key {
			onRoute = append(onRoute, e)
		}
	}

	priced := c.Price(onRoute, trucks, ByTruckDay)

	var overall, subject Stats
	perDriver := make(map[string]*Stats)
	order := make([]string, 0)

	for _, p := range priced {
		overall.add(p.Entry, p.Costs)

		if q.isSubject(p.Entry) {
			subject.add(p.Entry, p.Costs)
		}

		if p.Entry.DriverID == "" {
			continue
		}
		s, ok := perDriver[p.Entry.DriverID]
		if !ok {
			s = &Stats{}
			perDriver[p.Entry.DriverID] = s
			order = append(order, p.Entry.DriverID)
		}
		s.add(p.Entry, p.Costs)
	}
	overall.finish()
	subject.finish()

	drivers := make([]DriverRouteRank, 0, len(order))
	for _, id := range order {
		s := perDriver[id]
		drivers = append(drivers, DriverRouteRank{DriverID: id, TripCount: s.TripCount, AvgResult: s.AverageResult()})
	}
	slices.SortStableFunc(drivers, func(a, b DriverRouteRank) int {
		switch {
		case a.AvgResult > b.AvgResult:
			return -1
		case a.AvgResult < b.AvgResult:
			return 1
		default:
			return 0
		}
	})

	rank := 0
	if q.DriverID != "" {
		rank = slices.IndexFunc(drivers, func(d DriverRouteRank) bool { return d.DriverID == q.DriverID }) + 1
	}

	return TrajectoryReport{
		Route:      q.Route,
		Overall:    averagesOf(overall),
		Subject:    averagesOf(subject),
		Drivers:    drivers,
		DriverRank: rank,
	}
}
