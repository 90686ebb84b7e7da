package viewcache

import (
	"sort"
	"sync"

	"restaurant-pos/internal/domain"
)

// Store is the client-side mirror of server state. Every pushed event is
// applied as an idempotent upsert keyed by order identifier (database id,
// falling back to the business order number), so duplicate delivery and
// redelivery are harmless.
//
// Events carry no version stamp: a stale update arriving after a newer one
// regresses the cached view until the next event or full resync. That is a
// known limitation of the broadcast contract, not something the cache tries
// to fix.
type Store struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order // keyed by order number
	byID     map[int64]string
	tables   map[string]*domain.Table
	payments map[string]*domain.Payment
}

func New() *Store {
	return &Store{
		orders:   make(map[string]*domain.Order),
		byID:     make(map[int64]string),
		tables:   make(map[string]*domain.Table),
		payments: make(map[string]*domain.Payment),
	}
}

// Apply routes an event into the matching upsert. Unknown event types are
// ignored so newer servers can add types without breaking old clients.
func (s *Store) Apply(ev domain.Event) {
	switch ev.Type {
	case domain.EventOrderCreated, domain.EventOrderUpdated:
		if ev.Order != nil {
			s.UpsertOrder(ev.Order)
		}
	case domain.EventPaymentProcessed:
		if ev.Payment != nil {
			s.UpsertPayment(ev.Payment)
		}
		if ev.Order != nil {
			s.UpsertOrder(ev.Order)
		}
	case domain.EventTableUpdated:
		if ev.Table != nil {
			s.UpsertTable(ev.Table)
		}
	}
}

// UpsertOrder replaces the cached order in place, or appends it when unseen.
// Last applied wins.
func (s *Store) UpsertOrder(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := o.Number
	if key == "" {
		if existing, ok := s.byID[o.ID]; ok {
			key = existing
		}
	}
	if key == "" {
		return // nothing to key on
	}
	cp := *o
	s.orders[key] = &cp
	if o.ID != 0 {
		s.byID[o.ID] = key
	}
}

func (s *Store) UpsertTable(t *domain.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tables[t.Number] = &cp
}

func (s *Store) UpsertPayment(p *domain.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.payments[p.ID] = &cp
}

// Resync replaces the whole order set with a freshly fetched one; the
// periodic safety net for missed broadcasts.
func (s *Store) Resync(orders []*domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[string]*domain.Order, len(orders))
	s.byID = make(map[int64]string, len(orders))
	for _, o := range orders {
		cp := *o
		s.orders[o.Number] = &cp
		if o.ID != 0 {
			s.byID[o.ID] = o.Number
		}
	}
}

func (s *Store) Order(number string) (*domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[number]
	if !ok {
		return nil, false
	}
	cp := *o
	return &cp, true
}

func (s *Store) Table(number string) (*domain.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[number]
	if !ok {
		return nil, false
	}
	cp := *t
	return &cp, true
}

// Orders returns the cached orders sorted by creation time, newest first.
func (s *Store) Orders() []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
