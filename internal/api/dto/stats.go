package dto

type StatsResponse struct {
	TripCount         int     `json:"trip_count"`
	TotalKm           float64 `json:"total_km"`
	TotalFuelLiters   float64 `json:"total_fuel_liters"`
	TotalFuelCost     float64 `json:"total_fuel_cost"`
	TotalMaintenance  float64 `json:"total_maintenance"`
	TotalFixedCharges float64 `json:"total_fixed_charges"`
	TotalCost         float64 `json:"total_cost"`
	TotalRevenue      float64 `json:"total_revenue"`
	Result            float64 `json:"result"`
	CostPerKm         float64 `json:"cost_per_km"`
	ConsumptionL100km float64 `json:"consumption_l_100km"`
	PerformancePct    float64 `json:"performance_pct"`
}

type TruckStatsResponse struct {
	TruckID   string        `json:"truck_id"`
	Matricule string        `json:"matricule"`
	From      string        `json:"from,omitempty"`
	To        string        `json:"to,omitempty"`
	Stats     StatsResponse `json:"stats"`
}

type DriverStatsResponse struct {
	DriverID string        `json:"driver_id"`
	Name     string        `json:"name"`
	From     string        `json:"from,omitempty"`
	To       string        `json:"to,omitempty"`
	Stats    StatsResponse `json:"stats"`
}
