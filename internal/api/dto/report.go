package dto

import "time"

type CostsResponse struct {
	FuelCost     float64 `json:"fuel_cost"`
	Maintenance  float64 `json:"maintenance"`
	FixedCharges float64 `json:"fixed_charges"`
	TotalCost    float64 `json:"total_cost"`
	Result       float64 `json:"result"`
}

type TripResponse struct {
	ID             string        `json:"id"`
	Date           string        `json:"date"`
	TruckID        string        `json:"truck_id"`
	Matricule      string        `json:"matricule"`
	DriverID       string        `json:"driver_id"`
	DriverName     string        `json:"driver_name"`
	Destination    string        `json:"destination"`
	Kilometers     float64       `json:"kilometers"`
	DeliveryPrice  float64       `json:"delivery_price"`
	FirstTripOfDay bool          `json:"first_trip_of_day"`
	CreatedAt      *time.Time    `json:"created_at"`
	Costs          CostsResponse `json:"costs"`
}

type RankedResponse struct {
	Rank  int           `json:"rank"`
	Key   string        `json:"key"`
	Label string        `json:"label"`
	Stats StatsResponse `json:"stats"`
}

type DashboardResponse struct {
	Date          string           `json:"date"`
	DriverID      string           `json:"driver_id,omitempty"`
	ActiveTrucks  int              `json:"active_trucks"`
	ActiveDrivers int              `json:"active_drivers"`
	Stats         StatsResponse    `json:"stats"`
	TopTrucks     []RankedResponse `json:"top_trucks"`
	Trips         []TripResponse   `json:"trips"`
}

type RankingResponse struct {
	By       string           `json:"by"`
	From     string           `json:"from,omitempty"`
	To       string           `json:"to,omitempty"`
	Rankings []RankedResponse `json:"rankings"`
}

type DailyPointResponse struct {
	Date   string  `json:"date"`
	Result float64 `json:"result"`
}

type TimeSeriesResponse struct {
	Anchor string               `json:"anchor"`
	Days   int                  `json:"days"`
	Points []DailyPointResponse `json:"points"`
}

type SnapshotResponse struct {
	LoadedAt       time.Time `json:"loaded_at"`
	Trucks         int       `json:"trucks"`
	Drivers        int       `json:"drivers"`
	Entries        int       `json:"entries"`
	Planifications int       `json:"planifications"`
}
