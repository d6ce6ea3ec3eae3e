package api

import (
	"fleet-ledger-service/internal/api/handlers"
	"fleet-ledger-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(snapshots handlers.SnapshotSource, policy services.FinancialPolicy) http.Handler {
	mux := http.NewServeMux()

	reports := &handlers.ReportHandler{
		Snapshots: snapshots,
		Policy:    policy,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/dashboard", reports.Dashboard)
	mux.HandleFunc("/stats/trucks", reports.TruckStats)
	mux.HandleFunc("/stats/drivers", reports.DriverStats)
	mux.HandleFunc("/reports/ranking", reports.Ranking)
	mux.HandleFunc("/reports/timeseries", reports.TimeSeries)
	mux.HandleFunc("/trajectories", reports.Trajectory)
	mux.HandleFunc("/snapshot/refresh", reports.RefreshSnapshot)

	return loggingMiddleware(mux)
}
