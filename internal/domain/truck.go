package domain

// TruckType is the body type of a truck.
type TruckType string

const (
	TruckPlateau TruckType = "PLATEAU"
	TruckBenne   TruckType = "BENNE"
	TruckCiterne TruckType = "CITERNE"
)

// ParseTruckType maps unknown or empty values to PLATEAU.
func ParseTruckType(s string) TruckType {
	switch TruckType(s) {
	case TruckBenne, TruckCiterne:
		return TruckType(s)
	default:
		return TruckPlateau
	}
}

// Truck carries daily fixed charges. Each charge is attributed once per
// day the truck is used, however many trips it makes that day.
type Truck struct {
	ID               string
	Matricule        string
	Type             TruckType
	FixedCharges     float64
	Insurance        float64
	Tax              float64
	PersonnelCharges float64
}

// DailyFixedCharges sums the four daily charge fields.
func (t Truck) DailyFixedCharges() float64 {
	return t.FixedCharges + t.Insurance + t.Tax + t.PersonnelCharges
}

// Driver optionally owns a single truck.
type Driver struct {
	ID      string
	Name    string
	Phone   string
	TruckID string
}

func (d Driver) HasTruck() bool { return d.TruckID != "" }

// Settings is the singleton configuration record.
type Settings struct {
	DefaultFuelPrice float64
}

const DefaultFuelPrice = 2.0

func DefaultSettings() Settings {
	return Settings{DefaultFuelPrice: DefaultFuelPrice}
}

// OrDefault keeps fallback's fuel price when s has no positive one.
func (s Settings) OrDefault(fallback Settings) Settings {
	if s.DefaultFuelPrice <= 0 {
		s.DefaultFuelPrice = fallback.DefaultFuelPrice
	}
	if s.DefaultFuelPrice <= 0 {
		s.DefaultFuelPrice = DefaultFuelPrice
	}
	return s
}
