package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fleet-ledger-service/internal/api/dto"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubSnapshots struct {
	snap      *ports.Snapshot
	err       error
	refreshed int
}

func (s *stubSnapshots) Current(ctx context.Context) (*ports.Snapshot, error) {
	return s.snap, s.err
}

func (s *stubSnapshots) Refresh(ctx context.Context) (*ports.Snapshot, error) {
	s.refreshed++
	return s.snap, s.err
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func fixture(t *testing.T) *stubSnapshots {
	d := mustDate(t, "2026-02-04")
	early := time.Date(2026, 2, 4, 7, 0, 0, 0, time.UTC)
	sfax := domain.Place{Governorate: "Sfax", Delegation: "Sakiet"}
	tunis := domain.Place{Governorate: "Tunis", Delegation: "Bardo"}

	return &stubSnapshots{snap: &ports.Snapshot{
		Trucks:  []domain.Truck{{ID: "T1", Matricule: "123 TU 4567", FixedCharges: 400, Insurance: 32, Tax: 20, PersonnelCharges: 80}},
		Drivers: []domain.Driver{{ID: "D1", Name: "Ali"}, {ID: "D2", Name: "Sami"}},
		Entries: []domain.Entry{
			{ID: "e1", Date: d, TruckID: "T1", DriverID: "D1", Origin: sfax, Dest: tunis, Kilometers: 270, DeliveryPrice: 1000, CreatedAt: &early},
			{ID: "e2", Date: d, TruckID: "T1", DriverID: "D2", Origin: sfax, Dest: tunis, Kilometers: 270, DeliveryPrice: 200},
		},
		Settings: domain.DefaultSettings(),
		LoadedAt: early,
	}}
}

func newHandler(src SnapshotSource) *ReportHandler {
	return &ReportHandler{
		Snapshots: src,
		Now:       func() time.Time { return time.Date(2026, 2, 4, 12, 0, 0, 0, time.UTC) },
	}
}

func get(t *testing.T, h http.HandlerFunc, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h(rr, req)

	if out != nil && rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v body=%s", target, err, rr.Body.String())
		}
	}
	return rr
}

func TestDashboardDefaultsToToday(t *testing.T) {
	h := newHandler(fixture(t))

	var res dto.DashboardResponse
	rr := get(t, h.Dashboard, "/dashboard", &res)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	if res.Date != "2026-02-04" || res.ActiveTrucks != 1 || res.ActiveDrivers != 2 {
		t.Fatalf("res = %+v", res)
	}
	if res.Stats.TotalFixedCharges != 532 || res.Stats.Result != 1200-532 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if len(res.Trips) != 2 || !res.Trips[0].FirstTripOfDay || res.Trips[0].Matricule != "123 TU 4567" {
		t.Fatalf("trips = %+v", res.Trips)
	}
	if res.Trips[1].DriverName != "Sami" || res.Trips[1].Destination != "Tunis / Bardo" {
		t.Fatalf("trip[1] = %+v", res.Trips[1])
	}
}

func TestDashboardDriverScope(t *testing.T) {
	h := newHandler(fixture(t))

	var res dto.DashboardResponse
	get(t, h.Dashboard, "/dashboard?date=2026-02-04&driver_id=D2", &res)

	// Without D1's earlier trip, e2 carries the fixed charges.
	if len(res.Trips) != 1 || !res.Trips[0].FirstTripOfDay || res.Stats.Result != 200-532 {
		t.Fatalf("res = %+v", res)
	}
}

func TestHandlersRejectBadParams(t *testing.T) {
	h := newHandler(fixture(t))

	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  string
	}{
		{"bad date", h.Dashboard, "/dashboard?date=04/02/2026"},
		{"missing truck id", h.TruckStats, "/stats/trucks"},
		{"inverted period", h.DriverStats, "/stats/drivers?id=D1&from=2026-02-05&to=2026-02-01"},
		{"unknown group", h.Ranking, "/reports/ranking?by=city"},
		{"window too large", h.TimeSeries, "/reports/timeseries?days=1000"},
		{"window zero", h.TimeSeries, "/reports/timeseries?days=0"},
		{"missing destination", h.Trajectory, "/trajectories?from_governorate=Sfax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := get(t, tt.handler, tt.target, nil); rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestHandlersSnapshotFailure(t *testing.T) {
	h := newHandler(&stubSnapshots{err: errors.New("db down")})

	if rr := get(t, h.Ranking, "/reports/ranking", nil); rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestRankingByDriverUsesNames(t *testing.T) {
	h := newHandler(fixture(t))

	var res dto.RankingResponse
	get(t, h.Ranking, "/reports/ranking?by=driver", &res)

	if len(res.Rankings) != 2 {
		t.Fatalf("rankings = %+v", res.Rankings)
	}
	// D1 alone: 1000 - 532; D2 alone: 200 - 532.
	if res.Rankings[0].Key != "D1" || res.Rankings[0].Label != "Ali" || res.Rankings[0].Rank != 1 {
		t.Fatalf("first = %+v", res.Rankings[0])
	}
}

func TestTruckStats(t *testing.T) {
	h := newHandler(fixture(t))

	var res dto.TruckStatsResponse
	get(t, h.TruckStats, "/stats/trucks?id=T1&from=2026-02-01&to=2026-02-28", &res)

	if res.Matricule != "123 TU 4567" || res.Stats.TripCount != 2 || res.From != "2026-02-01" {
		t.Fatalf("res = %+v", res)
	}
}

func TestTimeSeriesWindow(t *testing.T) {
	h := newHandler(fixture(t))

	var res dto.TimeSeriesResponse
	get(t, h.TimeSeries, "/reports/timeseries?anchor=2026-02-05&days=3", &res)

	if len(res.Points) != 3 || res.Points[0].Date != "2026-02-03" || res.Points[1].Result != 1200-532 {
		t.Fatalf("points = %+v", res.Points)
	}
}

func TestTrajectory(t *testing.T) {
	h := newHandler(fixture(t))

	var res dto.TrajectoryResponse
	get(t, h.Trajectory, "/trajectories?driver_id=D2&from_governorate=Sfax&from_delegation=Sakiet&to_governorate=Tunis&to_delegation=Bardo", &res)

	if res.Overall.TripCount != 2 || res.Overall.AvgKm != 270 {
		t.Fatalf("overall = %+v", res.Overall)
	}
	if res.DriverRank != 2 || len(res.Drivers) != 2 || res.Drivers[0].Name != "Ali" {
		t.Fatalf("drivers = %+v rank=%d", res.Drivers, res.DriverRank)
	}
}

func TestRefreshSnapshot(t *testing.T) {
	src := fixture(t)
	h := newHandler(src)

	rr := httptest.NewRecorder()
	h.RefreshSnapshot(rr, httptest.NewRequest(http.MethodGet, "/snapshot/refresh", nil))
	if rr.Code != http.StatusMethodNotAllowed || rr.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("GET status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.RefreshSnapshot(rr, httptest.NewRequest(http.MethodPost, "/snapshot/refresh", nil))
	if rr.Code != http.StatusOK || src.refreshed != 1 {
		t.Fatalf("status = %d refreshed=%d", rr.Code, src.refreshed)
	}

	var res dto.SnapshotResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Entries != 2 || res.Trucks != 1 {
		t.Fatalf("res = %+v", res)
	}
}
