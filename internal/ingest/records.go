package ingest

import (
	"errors"
	"fleet-ledger-service/internal/domain"
	"fmt"
)

var ErrMissingID = errors.New("record has no id")

func (d Doc) get(keys ...string) any {
	for _, k := range keys {
		if v, ok := d[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (d Doc) sub(key string) Doc {
	switch m := d[key].(type) {
	case map[string]any:
		return Doc(m)
	case Doc:
		return m
	default:
		return Doc{}
	}
}

func requireID(d Doc, kind string) (string, error) {
	id := Text(d.get("id", "_id"))
	if id == "" {
		return "", fmt.Errorf("parse %s: %w", kind, ErrMissingID)
	}
	return id, nil
}

// ParseTruck reads a truck document.
func ParseTruck(d Doc) (domain.Truck, error) {
	id, err := requireID(d, "truck")
	if err != nil {
		return domain.Truck{}, err
	}

	return domain.Truck{
		ID:               id,
		Matricule:        Text(d.get("matricule")),
		Type:             domain.ParseTruckType(Text(d.get("type"))),
		FixedCharges:     Amount(d.get("chargesFixes")),
		Insurance:        Amount(d.get("montantAssurance")),
		Tax:              Amount(d.get("montantTaxe")),
		PersonnelCharges: Amount(d.get("chargePersonnel")),
	}, nil
}

func ParseDriver(d Doc) (domain.Driver, error) {
	id, err := requireID(d, "driver")
	if err != nil {
		return domain.Driver{}, err
	}

	return domain.Driver{
		ID:      id,
		Name:    Text(d.get("nom", "name")),
		Phone:   Text(d.get("telephone", "phone")),
		TruckID: Text(d.get("camionId")),
	}, nil
}

// ParseEntry reads a trip document. An unparsable date leaves the zero
// Date, which no date-filtered view will match.
func ParseEntry(d Doc) (domain.Entry, error) {
	id, err := requireID(d, "entry")
	if err != nil {
		return domain.Entry{}, err
	}
	return parseEntryFields(d, id), nil
}

func parseEntryFields(d Doc, id string) domain.Entry {
	date, _ := domain.ParseDate(Text(d.get("date")))

	return domain.Entry{
		ID:       id,
		Date:     date,
		TruckID:  Text(d.get("camionId")),
		DriverID: Text(d.get("chauffeurId")),
		Origin: domain.Place{
			Governorate: Text(d.get("origineGouvernorat")),
			Delegation:  Text(d.get("origineDelegation")),
		},
		Dest: domain.Place{
			Governorate: Text(d.get("gouvernorat", "destinationGouvernorat")),
			Delegation:  Text(d.get("delegation", "destinationDelegation")),
		},
		Destination:       Text(d.get("destination")),
		Kilometers:        Amount(d.get("kilometrage")),
		FuelLiters:        Amount(d.get("quantiteGasoil")),
		FuelPricePerLiter: OptionalAmount(d.get("prixGasoilLitre")),
		Maintenance:       Amount(d.get("maintenance")),
		DeliveryPrice:     Amount(d.get("prixLivraison")),
		Remarks:           Text(d.get("remarques")),
		CreatedAt:         Timestamp(d.get("createdAt")),
	}
}

func parsePhotos(d Doc) domain.PhotoSet {
	return domain.PhotoSet{
		Dashboard: Text(d.get("dashboard", "compteur")),
		FullTruck: Text(d.get("camion", "fullTruck")),
		Document:  Text(d.get("document", "bonLivraison")),
		Cargo:     Text(d.get("chargement", "cargo")),
	}
}

func ParsePlanification(d Doc) (domain.Planification, error) {
	id, err := requireID(d, "planification")
	if err != nil {
		return domain.Planification{}, err
	}

	return domain.Planification{
		Entry:       parseEntryFields(d, id),
		Status:      domain.ParseStatus(Text(d.get("statut"))),
		ScheduledAt: Timestamp(d.get("dateHeure", "scheduledAt")),
		StartPhotos: parsePhotos(d.sub("photosDebut")),
		EndPhotos:   parsePhotos(d.sub("photosFin")),
		UpdatedAt:   Timestamp(d.get("updatedAt")),
	}, nil
}

// ParseSettings never fails. A missing or zero price keeps the default.
func ParseSettings(d Doc) domain.Settings {
	s := domain.DefaultSettings()
	if p := Amount(d.get("defaultFuelPrice", "prixGasoil")); p > 0 {
		s.DefaultFuelPrice = p
	}
	return s
}
