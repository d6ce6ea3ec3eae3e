package services

import "fleet-ledger-service/internal/domain"

type DailyPoint struct {
	Date   domain.Date
	Result float64
}

// TimeSeries returns exactly windowDays consecutive days ending at anchor,
// oldest first. Days without trips are 0. The walk is done on calendar
// triples so no timezone shift can move a trip to a neighbouring day.
func (c Calculator) TimeSeries(entries []domain.Entry, trucks []domain.Truck, windowDays int, anchor domain.Date) []DailyPoint {
	if windowDays <= 0 {
		return []DailyPoint{}
	}

	anchor = domain.NewDate(anchor.Year, anchor.Month, anchor.Day)
	start := anchor.AddDays(-(windowDays - 1))
	costs := c.costsFor(entries, trucks, ByTruckDay)

	byDay := make(map[domain.Date]float64)
	for i, e := range entries {
		if e.Date.Between(start, anchor) {
			byDay[e.Date] += costs[i].Result
		}
	}

	points := make([]DailyPoint, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		d := start.AddDays(i)
		points = append(points, DailyPoint{Date: d, Result: byDay[d]})
	}
	return points
}
