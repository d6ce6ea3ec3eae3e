package handlers

import (
	"fleet-ledger-service/internal/api/dto"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/services"
)

func toStats(s services.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TripCount:         s.TripCount,
		TotalKm:           s.TotalKm,
		TotalFuelLiters:   s.TotalFuelLiters,
		TotalFuelCost:     s.TotalFuelCost,
		TotalMaintenance:  s.TotalMaintenance,
		TotalFixedCharges: s.TotalFixedCharges,
		TotalCost:         s.TotalCost,
		TotalRevenue:      s.TotalRevenue,
		Result:            s.Result,
		CostPerKm:         s.CostPerKm,
		ConsumptionL100km: s.ConsumptionL100km,
		PerformancePct:    s.PerformancePct,
	}
}

func toRanked(ranked []services.Ranked, label func(string) string) []dto.RankedResponse {
	out := make([]dto.RankedResponse, 0, len(ranked))
	for i, rk := range ranked {
		out = append(out, dto.RankedResponse{
			Rank:  i + 1,
			Key:   rk.Key,
			Label: label(rk.Key),
			Stats: toStats(rk.Stats),
		})
	}
	return out
}

// destination prefers the structured place over the free-text field.
func destination(e domain.Entry) string {
	if e.Dest.IsZero() {
		return e.Destination
	}
	if e.Dest.Delegation == "" {
		return e.Dest.Governorate
	}
	return e.Dest.Governorate + " / " + e.Dest.Delegation
}

func toTrip(p services.PricedEntry, rep *services.Reports) dto.TripResponse {
	e := p.Entry
	return dto.TripResponse{
		ID:             e.ID,
		Date:           e.Date.String(),
		TruckID:        e.TruckID,
		Matricule:      rep.TruckLabel(e.TruckID),
		DriverID:       e.DriverID,
		DriverName:     rep.DriverName(e.DriverID),
		Destination:    destination(e),
		Kilometers:     e.Kilometers,
		DeliveryPrice:  e.DeliveryPrice,
		FirstTripOfDay: p.First,
		CreatedAt:      e.CreatedAt,
		Costs: dto.CostsResponse{
			FuelCost:     p.Costs.FuelCost,
			Maintenance:  p.Costs.Maintenance,
			FixedCharges: p.Costs.FixedCharges,
			TotalCost:    p.Costs.TotalCost,
			Result:       p.Costs.Result,
		},
	}
}

func toPlace(p domain.Place) dto.PlaceResponse {
	return dto.PlaceResponse{Governorate: p.Governorate, Delegation: p.Delegation}
}

func toAverages(a services.RouteAverages) dto.RouteAveragesResponse {
	return dto.RouteAveragesResponse{
		TripCount:       a.TripCount,
		AvgKm:           a.AvgKm,
		AvgFuelLiters:   a.AvgFuelLiters,
		AvgCost:         a.AvgCost,
		AvgRevenue:      a.AvgRevenue,
		AvgResult:       a.AvgResult,
		ConsumptionL100: a.ConsumptionL100,
	}
}
