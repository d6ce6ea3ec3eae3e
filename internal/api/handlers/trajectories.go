package handlers

import (
	"fleet-ledger-service/internal/api/dto"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/services"
	"net/http"
)

// Trajectory compares one driver or truck with the fleet on an exact
// origin/destination pair.
func (h *ReportHandler) Trajectory(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	q := services.TrajectoryQuery{
		DriverID: queryString(r, "driver_id"),
		TruckID:  queryString(r, "truck_id"),
		Route: domain.Route{
			From: domain.Place{Governorate: queryString(r, "from_governorate"), Delegation: queryString(r, "from_delegation")},
			To:   domain.Place{Governorate: queryString(r, "to_governorate"), Delegation: queryString(r, "to_delegation")},
		},
	}
	if q.Route.To.IsZero() {
		writeError(w, r, http.StatusBadRequest, "to_governorate or to_delegation is required")
		return
	}

	rep, ok := h.reports(w, r)
	if !ok {
		return
	}
	report := rep.Trajectory(q)

	res := dto.TrajectoryResponse{
		From:       toPlace(report.Route.From),
		To:         toPlace(report.Route.To),
		Overall:    toAverages(report.Overall),
		Subject:    toAverages(report.Subject),
		Drivers:    make([]dto.DriverRouteRankResponse, 0, len(report.Drivers)),
		DriverRank: report.DriverRank,
	}
	for _, d := range report.Drivers {
		res.Drivers = append(res.Drivers, dto.DriverRouteRankResponse{
			DriverID:  d.DriverID,
			Name:      rep.DriverName(d.DriverID),
			TripCount: d.TripCount,
			AvgResult: d.AvgResult,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
