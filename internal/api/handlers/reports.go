package handlers

import (
	"context"
	"fleet-ledger-service/internal/api/dto"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/ports"
	"fleet-ledger-service/internal/services"
	"log"
	"net/http"
	"time"
)

// SnapshotSource hands out the snapshot every report is computed from.
type SnapshotSource interface {
	Current(ctx context.Context) (*ports.Snapshot, error)
	Refresh(ctx context.Context) (*ports.Snapshot, error)
}

// ReportHandler exposes the read-only KPI views. Every request folds a
// fresh Reports over the current snapshot.
type ReportHandler struct {
	Snapshots SnapshotSource
	Policy    services.FinancialPolicy
	Now       func() time.Time
}

func (h *ReportHandler) today() domain.Date {
	if h.Now != nil {
		return domain.DateOf(h.Now())
	}
	return domain.DateOf(time.Now())
}

func (h *ReportHandler) reports(w http.ResponseWriter, r *http.Request) (*services.Reports, bool) {
	snap, err := h.Snapshots.Current(r.Context())
	if err != nil {
		log.Printf("load snapshot failed: path=%s err=%v", r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return services.NewReports(snap, h.Policy), true
}

// Dashboard serves the day view. driver_id restricts it to one driver's
// trips, the way the driver app shows it.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	day, err := queryDate(r, "date", h.today())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	driverID := queryString(r, "driver_id")

	rep, ok := h.reports(w, r)
	if !ok {
		return
	}
	kpi := rep.Dashboard(day, driverID)

	res := dto.DashboardResponse{
		Date:          kpi.Date.String(),
		DriverID:      driverID,
		ActiveTrucks:  kpi.ActiveTrucks,
		ActiveDrivers: kpi.ActiveDrivers,
		Stats:         toStats(kpi.Stats),
		TopTrucks:     toRanked(kpi.TopTrucks, rep.TruckLabel),
		Trips:         make([]dto.TripResponse, 0, len(kpi.Trips)),
	}
	for _, p := range kpi.Trips {
		res.Trips = append(res.Trips, toTrip(p, rep))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ReportHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	by := queryString(r, "by")
	if by == "" {
		by = "truck"
	}
	var groupBy services.GroupFunc
	switch by {
	case "truck":
		groupBy = services.ByTruck
	case "driver":
		groupBy = services.ByDriver
	case "route":
		groupBy = services.ByRoute
	default:
		writeError(w, r, http.StatusBadRequest, "by must be one of truck, driver, route")
		return
	}

	period, err := queryPeriod(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rep, ok := h.reports(w, r)
	if !ok {
		return
	}

	label := func(key string) string { return key }
	switch by {
	case "truck":
		label = rep.TruckLabel
	case "driver":
		label = rep.DriverName
	}

	writeJSON(w, r, http.StatusOK, dto.RankingResponse{
		By:       by,
		From:     period.From.String(),
		To:       period.To.String(),
		Rankings: toRanked(rep.Ranking(groupBy, queryString(r, "driver_id"), period), label),
	})
}

func (h *ReportHandler) TimeSeries(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	anchor, err := queryDate(r, "anchor", h.today())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	days, err := queryInt(r, "days", 30, 1, 366)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rep, ok := h.reports(w, r)
	if !ok {
		return
	}
	points := rep.TimeSeries(anchor, days, queryString(r, "driver_id"))

	res := dto.TimeSeriesResponse{
		Anchor: anchor.String(),
		Days:   days,
		Points: make([]dto.DailyPointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.Points = append(res.Points, dto.DailyPointResponse{Date: p.Date.String(), Result: p.Result})
	}

	writeJSON(w, r, http.StatusOK, res)
}
