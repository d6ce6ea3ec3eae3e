package repositories

import (
	"context"
	"fleet-ledger-service/internal/domain"
	"fleet-ledger-service/internal/ports"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process RecordStore. Lists return records in
// insertion order; an upsert of an existing id keeps its position.
type MemoryStore struct {
	mu sync.RWMutex

	trucks   orderedMap[domain.Truck]
	drivers  orderedMap[domain.Driver]
	entries  orderedMap[domain.Entry]
	plans    orderedMap[domain.Planification]
	settings *domain.Settings

	// Now stamps CreatedAt on entries written without one.
	Now func() time.Time
}

var _ ports.RecordStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Now: time.Now}
}

type orderedMap[T any] struct {
	ids  []string
	byID map[string]T
}

func (m *orderedMap[T]) put(id string, v T) {
	if m.byID == nil {
		m.byID = make(map[string]T)
	}
	if _, ok := m.byID[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.byID[id] = v
}

func (m *orderedMap[T]) get(id string) (T, bool) {
	v, ok := m.byID[id]
	return v, ok
}

func (m *orderedMap[T]) remove(id string) {
	if _, ok := m.byID[id]; !ok {
		return
	}
	delete(m.byID, id)
	for i, v := range m.ids {
		if v == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
}

func (m *orderedMap[T]) list() []T {
	out := make([]T, 0, len(m.ids))
	for _, id := range m.ids {
		out = append(out, m.byID[id])
	}
	return out
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func (s *MemoryStore) stamp(t *time.Time) *time.Time {
	if t != nil {
		return t
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return &now
}

func (s *MemoryStore) ListTrucks(ctx context.Context) ([]domain.Truck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trucks.list(), nil
}

func (s *MemoryStore) GetTruck(ctx context.Context, id string) (domain.Truck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trucks.get(id)
	if !ok {
		return domain.Truck{}, fmt.Errorf("get truck id=%s: %w", id, ports.ErrNotFound)
	}
	return t, nil
}

func (s *MemoryStore) UpsertTruck(ctx context.Context, t domain.Truck) (domain.Truck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = newID(t.ID)
	s.trucks.put(t.ID, t)
	return t, nil
}

func (s *MemoryStore) DeleteTruck(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trucks.remove(id)
	return nil
}

func (s *MemoryStore) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drivers.list(), nil
}

func (s *MemoryStore) GetDriver(ctx context.Context, id string) (domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers.get(id)
	if !ok {
		return domain.Driver{}, fmt.Errorf("get driver id=%s: %w", id, ports.ErrNotFound)
	}
	return d, nil
}

func (s *MemoryStore) UpsertDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = newID(d.ID)
	s.drivers.put(d.ID, d)
	return d, nil
}

func (s *MemoryStore) DeleteDriver(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers.remove(id)
	return nil
}

func (s *MemoryStore) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.list(), nil
}

func (s *MemoryStore) GetEntry(ctx context.Context, id string) (domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries.get(id)
	if !ok {
		return domain.Entry{}, fmt.Errorf("get entry id=%s: %w", id, ports.ErrNotFound)
	}
	return e, nil
}

func (s *MemoryStore) UpsertEntry(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = newID(e.ID)
	e.CreatedAt = s.stamp(e.CreatedAt)
	s.entries.put(e.ID, e)
	return e, nil
}

func (s *MemoryStore) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.remove(id)
	return nil
}

func (s *MemoryStore) ListPlanifications(ctx context.Context) ([]domain.Planification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plans.list(), nil
}

func (s *MemoryStore) GetPlanification(ctx context.Context, id string) (domain.Planification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans.get(id)
	if !ok {
		return domain.Planification{}, fmt.Errorf("get planification id=%s: %w", id, ports.ErrNotFound)
	}
	return p, nil
}

func (s *MemoryStore) UpsertPlanification(ctx context.Context, p domain.Planification) (domain.Planification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = newID(p.ID)
	p.CreatedAt = s.stamp(p.CreatedAt)
	if p.Status == "" {
		p.Status = domain.StatusPlanned
	}
	s.plans.put(p.ID, p)
	return p, nil
}

func (s *MemoryStore) DeletePlanification(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans.remove(id)
	return nil
}

func (s *MemoryStore) GetSettings(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return s.settings.OrDefault(domain.DefaultSettings()), nil
}

func (s *MemoryStore) SaveSettings(ctx context.Context, st domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st = st.OrDefault(domain.DefaultSettings())
	s.settings = &st
	return nil
}
