package handlers

import (
	"encoding/json"
	"fleet-ledger-service/internal/platform/obs"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

// writeError echoes the request id so clients can quote it in reports.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	body := map[string]string{"error": msg}
	if id := obs.RequestID(r.Context()); id != "" {
		body["request_id"] = id
	}
	writeJSON(w, r, status, body)
}
