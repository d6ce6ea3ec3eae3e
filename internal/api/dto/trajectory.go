package dto

type PlaceResponse struct {
	Governorate string `json:"governorate"`
	Delegation  string `json:"delegation"`
}

type RouteAveragesResponse struct {
	TripCount       int     `json:"trip_count"`
	AvgKm           float64 `json:"avg_km"`
	AvgFuelLiters   float64 `json:"avg_fuel_liters"`
	AvgCost         float64 `json:"avg_cost"`
	AvgRevenue      float64 `json:"avg_revenue"`
	AvgResult       float64 `json:"avg_result"`
	ConsumptionL100 float64 `json:"consumption_l_100km"`
}

type DriverRouteRankResponse struct {
	DriverID  string  `json:"driver_id"`
	Name      string  `json:"name"`
	TripCount int     `json:"trip_count"`
	AvgResult float64 `json:"avg_result"`
}

type TrajectoryResponse struct {
	From       PlaceResponse             `json:"from"`
	To         PlaceResponse             `json:"to"`
	Overall    RouteAveragesResponse     `json:"overall"`
	Subject    RouteAveragesResponse     `json:"subject"`
	Drivers    []DriverRouteRankResponse `json:"drivers"`
	DriverRank int                       `json:"driver_rank"`
}
