package handlers

import (
	"fleet-ledger-service/internal/api/dto"
	"net/http"
)

func (h *ReportHandler) TruckStats(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	id := queryString(r, "id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
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

	writeJSON(w, r, http.StatusOK, dto.TruckStatsResponse{
		TruckID:   id,
		Matricule: rep.TruckLabel(id),
		From:      period.From.String(),
		To:        period.To.String(),
		Stats:     toStats(rep.TruckStats(id, period)),
	})
}

func (h *ReportHandler) DriverStats(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	id := queryString(r, "id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
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

	writeJSON(w, r, http.StatusOK, dto.DriverStatsResponse{
		DriverID: id,
		Name:     rep.DriverName(id),
		From:     period.From.String(),
		To:       period.To.String(),
		Stats:    toStats(rep.DriverStats(id, period)),
	})
}
