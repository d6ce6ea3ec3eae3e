package handlers

import (
	"fleet-ledger-service/internal/api/dto"
	"log"
	"net/http"
)

// RefreshSnapshot drops the cached snapshot and reloads it from the store.
func (h *ReportHandler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, err := h.Snapshots.Refresh(r.Context())
	if err != nil {
		log.Printf("refresh snapshot failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SnapshotResponse{
		LoadedAt:       snap.LoadedAt,
		Trucks:         len(snap.Trucks),
		Drivers:        len(snap.Drivers),
		Entries:        len(snap.Entries),
		Planifications: len(snap.Planifications),
	})
}
