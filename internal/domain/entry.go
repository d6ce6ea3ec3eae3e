package domain

import (
	"strings"
	"time"
)

// Place is a governorate/delegation pair.
type Place struct {
	Governorate string
	Delegation  string
}

func (p Place) IsZero() bool { return p.Governorate == "" && p.Delegation == "" }

// Route is matched by exact equality on all four fields.
type Route struct {
	From Place
	To   Place
}

func (r Route) Key() string {
	return strings.Join([]string{r.From.Governorate, r.From.Delegation, r.To.Governorate, r.To.Delegation}, "|")
}

// Entry is one completed trip. Numeric fields are already coerced to
// finite, non-negative values by the ingest boundary.
type Entry struct {
	ID       string
	Date     Date
	TruckID  string
	DriverID string
	Origin   Place
	Dest     Place

	// Destination is the free-text fallback when Dest is empty.
	Destination string

	Kilometers float64
	FuelLiters float64

	// FuelPricePerLiter is nil when the record omits it. An explicit zero
	// is a legal price and is kept.
	FuelPricePerLiter *float64

	Maintenance   float64
	DeliveryPrice float64
	Remarks       string

	CreatedAt *time.Time
}

func (e Entry) Route() Route { return Route{From: e.Origin, To: e.Dest} }

// FuelPrice resolves the per-liter price against a fallback.
func (e Entry) FuelPrice(fallback float64) float64 {
	if e.FuelPricePerLiter != nil {
		return *e.FuelPricePerLiter
	}
	return fallback
}

// Price returns a pointer to p, for literal FuelPricePerLiter values.
func Price(p float64) *float64 { return &p }
