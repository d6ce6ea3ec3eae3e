package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/platform/obs"
	"fleet-ledger-service/internal/ports"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dialect selects the bind-parameter syntax. Queries are written with
// Postgres $n placeholders and rewritten for SQLite.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func DialectFor(driver string) Dialect {
	if driver == "sqlite" {
		return SQLite
	}
	return Postgres
}

// SQL-backed implementation of the RecordStore port.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect

	// Defaults is returned by GetSettings when no settings row exists and
	// replaces a stored fuel price that is not positive.
	Defaults domain.Settings
	NewID    func() string
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{
		DB:       db,
		Dialect:  dialect,
		Defaults: domain.DefaultSettings(),
		NewID:    uuid.NewString,
	}
}

var _ ports.RecordStore = (*SQLStore)(nil)

func (s *SQLStore) rebind(q string) string {
	if s.Dialect != SQLite {
		return q
	}

	var b strings.Builder
	b.Grow(len(q))
	for i := 0; i < len(q); i++ {
		if q[i] == '$' && i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func (s *SQLStore) check() error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}
	return nil
}

func (s *SQLStore) assignID(id string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

// upsertQuery builds an INSERT ... ON CONFLICT (id) DO UPDATE over cols,
// whose first element must be id.
func upsertQuery(table string, cols []string) string {
	ph := make([]string, len(cols))
	set := make([]string, 0, len(cols)-1)
	for i, c := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
		if i > 0 {
			set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s;",
		table, strings.Join(cols, ", "), strings.Join(ph, ", "), strings.Join(set, ", "),
	)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// timeLayout is fixed width so created_at orders correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

var truckColumns = []string{"id", "matricule", "truck_type", "fixed_charges", "insurance", "tax", "personnel_charges"}

func scanTruck(r rowScanner) (domain.Truck, error) {
	var t domain.Truck
	var typ string
	if err := r.Scan(&t.ID, &t.Matricule, &typ, &t.FixedCharges, &t.Insurance, &t.Tax, &t.PersonnelCharges); err != nil {
		return domain.Truck{}, err
	}
	t.Type = domain.ParseTruckType(typ)
	return t, nil
}

func (s *SQLStore) ListTrucks(ctx context.Context) (_ []domain.Truck, err error) {
	defer obs.Time(ctx, "store.ListTrucks")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := "SELECT " + strings.Join(truckColumns, ", ") + " FROM trucks ORDER BY matricule, id;"
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list trucks: query trucks table: %w", err)
	}
	defer rows.Close()

	trucks := make([]domain.Truck, 0, 32)
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("list trucks: scan row: %w", err)
		}
		trucks = append(trucks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trucks: row iteration: %w", err)
	}
	return trucks, nil
}

func (s *SQLStore) GetTruck(ctx context.Context, id string) (domain.Truck, error) {
	if err := s.check(); err != nil {
		return domain.Truck{}, err
	}

	q := s.rebind("SELECT " + strings.Join(truckColumns, ", ") + " FROM trucks WHERE id = $1;")
	t, err := scanTruck(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Truck{}, fmt.Errorf("get truck id=%s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Truck{}, fmt.Errorf("get truck id=%s: %w", id, err)
	}
	return t, nil
}

func (s *SQLStore) UpsertTruck(ctx context.Context, t domain.Truck) (_ domain.Truck, err error) {
	defer obs.Time(ctx, "store.UpsertTruck")(&err)
	if err := s.check(); err != nil {
		return domain.Truck{}, err
	}

	t.ID = s.assignID(t.ID)
	t.Type = domain.ParseTruckType(string(t.Type))

	_, err = s.DB.ExecContext(ctx, s.rebind(upsertQuery("trucks", truckColumns)),
		t.ID, t.Matricule, string(t.Type), t.FixedCharges, t.Insurance, t.Tax, t.PersonnelCharges)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("upsert truck id=%s: %w", t.ID, err)
	}
	return t, nil
}

func (s *SQLStore) DeleteTruck(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "trucks", id)
}

var driverColumns = []string{"id", "name", "phone", "truck_id"}

func scanDriver(r rowScanner) (domain.Driver, error) {
	var d domain.Driver
	if err := r.Scan(&d.ID, &d.Name, &d.Phone, &d.TruckID); err != nil {
		return domain.Driver{}, err
	}
	return d, nil
}

func (s *SQLStore) ListDrivers(ctx context.Context) (_ []domain.Driver, err error) {
	defer obs.Time(ctx, "store.ListDrivers")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := "SELECT " + strings.Join(driverColumns, ", ") + " FROM drivers ORDER BY name, id;"
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]domain.Driver, 0, 32)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("list drivers: scan row: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}
	return drivers, nil
}

func (s *SQLStore) GetDriver(ctx context.Context, id string) (domain.Driver, error) {
	if err := s.check(); err != nil {
		return domain.Driver{}, err
	}

	q := s.rebind("SELECT " + strings.Join(driverColumns, ", ") + " FROM drivers WHERE id = $1;")
	d, err := scanDriver(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Driver{}, fmt.Errorf("get driver id=%s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Driver{}, fmt.Errorf("get driver id=%s: %w", id, err)
	}
	return d, nil
}

func (s *SQLStore) UpsertDriver(ctx context.Context, d domain.Driver) (_ domain.Driver, err error) {
	defer obs.Time(ctx, "store.UpsertDriver")(&err)
	if err := s.check(); err != nil {
		return domain.Driver{}, err
	}

	d.ID = s.assignID(d.ID)
	_, err = s.DB.ExecContext(ctx, s.rebind(upsertQuery("drivers", driverColumns)), d.ID, d.Name, d.Phone, d.TruckID)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("upsert driver id=%s: %w", d.ID, err)
	}
	return d, nil
}

func (s *SQLStore) DeleteDriver(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "drivers", id)
}

var entryColumns = []string{
	"id", "trip_date", "truck_id", "driver_id",
	"origin_governorate", "origin_delegation", "dest_governorate", "dest_delegation", "destination",
	"kilometers", "fuel_liters", "fuel_price_per_liter", "maintenance", "delivery_price",
	"remarks", "created_at",
}

// entryDest returns scan targets for entryColumns and a func that
// finishes the record once Scan has run.
func entryDest(e *domain.Entry) ([]any, func()) {
	var date string
	var price sql.NullFloat64
	var created sql.NullString

	dest := []any{
		&e.ID, &date, &e.TruckID, &e.DriverID,
		&e.Origin.Governorate, &e.Origin.Delegation, &e.Dest.Governorate, &e.Dest.Delegation, &e.Destination,
		&e.Kilometers, &e.FuelLiters, &price, &e.Maintenance, &e.DeliveryPrice,
		&e.Remarks, &created,
	}

	return dest, func() {
		e.Date, _ = domain.ParseDate(date)
		if price.Valid {
			e.FuelPricePerLiter = domain.Price(price.Float64)
		}
		e.CreatedAt = parseTime(created)
	}
}

func entryArgs(e domain.Entry) []any {
	var price any
	if e.FuelPricePerLiter != nil {
		price = *e.FuelPricePerLiter
	}

	return []any{
		e.ID, e.Date.String(), e.TruckID, e.DriverID,
		e.Origin.Governorate, e.Origin.Delegation, e.Dest.Governorate, e.Dest.Delegation, e.Destination,
		e.Kilometers, e.FuelLiters, price, e.Maintenance, e.DeliveryPrice,
		e.Remarks, formatTime(e.CreatedAt),
	}
}

func scanEntry(r rowScanner) (domain.Entry, error) {
	var e domain.Entry
	dest, finish := entryDest(&e)
	if err := r.Scan(dest...); err != nil {
		return domain.Entry{}, err
	}
	finish()
	return e, nil
}

// ListEntries orders by date then creation so input order is already the
// first-trip tie-break order.
func (s *SQLStore) ListEntries(ctx context.Context) (_ []domain.Entry, err error) {
	defer obs.Time(ctx, "store.ListEntries")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := "SELECT " + strings.Join(entryColumns, ", ") + " FROM entries ORDER BY trip_date, created_at, id;"
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list entries: query entries table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0, 256)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list entries: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: row iteration: %w", err)
	}
	return entries, nil
}

func (s *SQLStore) GetEntry(ctx context.Context, id string) (domain.Entry, error) {
	if err := s.check(); err != nil {
		return domain.Entry{}, err
	}

	q := s.rebind("SELECT " + strings.Join(entryColumns, ", ") + " FROM entries WHERE id = $1;")
	e, err := scanEntry(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entry{}, fmt.Errorf("get entry id=%s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Entry{}, fmt.Errorf("get entry id=%s: %w", id, err)
	}
	return e, nil
}

// UpsertEntry stamps CreatedAt on first write so the first-trip order is
// stable from then on.
func (s *SQLStore) UpsertEntry(ctx context.Context, e domain.Entry) (_ domain.Entry, err error) {
	defer obs.Time(ctx, "store.UpsertEntry")(&err)
	if err := s.check(); err != nil {
		return domain.Entry{}, err
	}

	e.ID = s.assignID(e.ID)
	if e.CreatedAt == nil {
		now := time.Now()
		e.CreatedAt = &now
	}

	if _, err := s.DB.ExecContext(ctx, s.rebind(upsertQuery("entries", entryColumns)), entryArgs(e)...); err != nil {
		return domain.Entry{}, fmt.Errorf("upsert entry id=%s: %w", e.ID, err)
	}
	return e, nil
}

func (s *SQLStore) DeleteEntry(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "entries", id)
}

var planificationColumns = append(append([]string{}, entryColumns...),
	"status", "scheduled_at", "start_photos", "end_photos", "updated_at")

type photoDoc struct {
	Dashboard string `json:"dashboard,omitempty"`
	FullTruck string `json:"camion,omitempty"`
	Document  string `json:"document,omitempty"`
	Cargo     string `json:"chargement,omitempty"`
}

func encodePhotos(p domain.PhotoSet) (string, error) {
	b, err := json.Marshal(photoDoc(p))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodePhotos(s string) domain.PhotoSet {
	var d photoDoc
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return domain.PhotoSet{}
	}
	return domain.PhotoSet(d)
}

func scanPlanification(r rowScanner) (domain.Planification, error) {
	var p domain.Planification
	var status, start, end string
	var scheduled, updated sql.NullString

	dest, finish := entryDest(&p.Entry)
	dest = append(dest, &status, &scheduled, &start, &end, &updated)
	if err := r.Scan(dest...); err != nil {
		return domain.Planification{}, err
	}
	finish()

	p.Status = domain.ParseStatus(status)
	p.ScheduledAt = parseTime(scheduled)
	p.StartPhotos = decodePhotos(start)
	p.EndPhotos = decodePhotos(end)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

func (s *SQLStore) ListPlanifications(ctx context.Context) (_ []domain.Planification, err error) {
	defer obs.Time(ctx, "store.ListPlanifications")(&err)
	if err := s.check(); err != nil {
		return nil, err
	}

	q := "SELECT " + strings.Join(planificationColumns, ", ") + " FROM planifications ORDER BY trip_date, created_at, id;"
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list planifications: query planifications table: %w", err)
	}
	defer rows.Close()

	plans := make([]domain.Planification, 0, 64)
	for rows.Next() {
		p, err := scanPlanification(rows)
		if err != nil {
			return nil, fmt.Errorf("list planifications: scan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list planifications: row iteration: %w", err)
	}
	return plans, nil
}

func (s *SQLStore) GetPlanification(ctx context.Context, id string) (domain.Planification, error) {
	if err := s.check(); err != nil {
		return domain.Planification{}, err
	}

	q := s.rebind("SELECT " + strings.Join(planificationColumns, ", ") + " FROM planifications WHERE id = $1;")
	p, err := scanPlanification(s.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Planification{}, fmt.Errorf("get planification id=%s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Planification{}, fmt.Errorf("get planification id=%s: %w", id, err)
	}
	return p, nil
}

func (s *SQLStore) UpsertPlanification(ctx context.Context, p domain.Planification) (_ domain.Planification, err error) {
	defer obs.Time(ctx, "store.UpsertPlanification")(&err)
	if err := s.check(); err != nil {
		return domain.Planification{}, err
	}

	p.ID = s.assignID(p.ID)
	if p.CreatedAt == nil {
		now := time.Now()
		p.CreatedAt = &now
	}
	if p.Status == "" {
		p.Status = domain.StatusPlanned
	}

	start, err := encodePhotos(p.StartPhotos)
	if err != nil {
		return domain.Planification{}, fmt.Errorf("upsert planification id=%s: encode start photos: %w", p.ID, err)
	}
	end, err := encodePhotos(p.EndPhotos)
	if err != nil {
		return domain.Planification{}, fmt.Errorf("upsert planification id=%s: encode end photos: %w", p.ID, err)
	}

	args := append(entryArgs(p.Entry), string(p.Status), formatTime(p.ScheduledAt), start, end, formatTime(p.UpdatedAt))
	if _, err := s.DB.ExecContext(ctx, s.rebind(upsertQuery("planifications", planificationColumns)), args...); err != nil {
		return domain.Planification{}, fmt.Errorf("upsert planification id=%s: %w", p.ID, err)
	}
	return p, nil
}

func (s *SQLStore) DeletePlanification(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "planifications", id)
}

func (s *SQLStore) GetSettings(ctx context.Context) (domain.Settings, error) {
	if err := s.check(); err != nil {
		return domain.Settings{}, err
	}

	var price float64
	err := s.DB.QueryRowContext(ctx, "SELECT default_fuel_price FROM settings WHERE id = 1;").Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return s.Defaults.OrDefault(domain.DefaultSettings()), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return domain.Settings{DefaultFuelPrice: price}.OrDefault(s.Defaults), nil
}

func (s *SQLStore) SaveSettings(ctx context.Context, st domain.Settings) error {
	if err := s.check(); err != nil {
		return err
	}

	q := s.rebind(`
	INSERT INTO settings (id, default_fuel_price) VALUES (1, $1)
	ON CONFLICT (id) DO UPDATE SET default_fuel_price = EXCLUDED.default_fuel_price;
	`)
	st = st.OrDefault(s.Defaults)
	if _, err := s.DB.ExecContext(ctx, q, st.DefaultFuelPrice); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// deleteByID is idempotent: deleting an unknown id is not an error.
func (s *SQLStore) deleteByID(ctx context.Context, table, id string) (err error) {
	defer obs.Time(ctx, "store.Delete."+table)(&err)
	if err := s.check(); err != nil {
		return err
	}

	q := s.rebind(fmt.Sprintf("DELETE FROM %s WHERE id = $1;", table))
	if _, err := s.DB.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete %s id=%s: %w", table, id, err)
	}
	return nil
}
