package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/service/loyalty"
)

// MockOrdersRepo is an in-memory implementation of repository.OrdersRepository.
type MockOrdersRepo struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]*domain.Order

	CreateFunc       func(ctx context.Context, o *domain.Order) error
	UpdateStatusFunc func(ctx context.Context, number string, from, to domain.OrderStatus, completedAt *time.Time) (bool, error)
}

func NewMockOrdersRepo() *MockOrdersRepo {
	return &MockOrdersRepo{orders: make(map[string]*domain.Order)}
}

func (m *MockOrdersRepo) NextSequence(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}

func (m *MockOrdersRepo) Create(ctx context.Context, o *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	o.ID = m.seq + 1000
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	m.orders[o.Number] = &cp
	return nil
}

func (m *MockOrdersRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[number]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, number)
	}
	cp := *o
	return &cp, nil
}

func (m *MockOrdersRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if activeOnly && o.Status.Terminal() {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockOrdersRepo) ListByPhone(ctx context.Context, phone string) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if o.CustomerPhone != nil && *o.CustomerPhone == phone {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockOrdersRepo) UpdateStatus(ctx context.Context, number string, from, to domain.OrderStatus, completedAt *time.Time) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, number, from, to, completedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[number]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	if completedAt != nil && o.CompletedAt == nil {
		o.CompletedAt = completedAt
	}
	return true, nil
}

func (m *MockOrdersRepo) MarkPaid(ctx context.Context, number string, method domain.PaymentMethod) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[number]
	if !ok || o.PaymentStatus != domain.PaymentPending {
		return false, nil
	}
	o.PaymentStatus = domain.PaymentPaid
	o.PaymentMethod = &method
	return true, nil
}

// MockMenuRepo serves a fixed menu.
type MockMenuRepo struct {
	items map[string]domain.MenuItem
}

func NewMockMenuRepo(items ...domain.MenuItem) *MockMenuRepo {
	m := &MockMenuRepo{items: make(map[string]domain.MenuItem)}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *MockMenuRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	out := make([]domain.MenuItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *MockMenuRepo) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: menu item %s", domain.ErrNotFound, id)
	}
	cp := it
	return &cp, nil
}

// MockPaymentsRepo records created payments in order.
type MockPaymentsRepo struct {
	mu       sync.Mutex
	payments []*domain.Payment

	CreateFunc func(ctx context.Context, p *domain.Payment) error
}

func NewMockPaymentsRepo() *MockPaymentsRepo { return &MockPaymentsRepo{} }

func (m *MockPaymentsRepo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.payments = append(m.payments, &cp)
	return nil
}

func (m *MockPaymentsRepo) ListByOrder(ctx context.Context, orderNumber string) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.OrderNumber == orderNumber {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockPaymentsRepo) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

// MockRegistry is an in-memory table.Registry with the same occupancy rules
// as the storage-backed one.
type MockRegistry struct {
	mu     sync.Mutex
	tables map[string]*domain.Table
}

func NewMockRegistry(numbers ...string) *MockRegistry {
	m := &MockRegistry{tables: make(map[string]*domain.Table)}
	for _, n := range numbers {
		m.tables[n] = &domain.Table{Number: n, Capacity: 4, Status: domain.TableAvailable}
	}
	return m
}

func (m *MockRegistry) Get(ctx context.Context, number string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[number]
	if !ok {
		return nil, fmt.Errorf("%w: table %s", domain.ErrNotFound, number)
	}
	cp := *t
	return &cp, nil
}

func (m *MockRegistry) List(ctx context.Context) ([]domain.TableView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TableView
	for _, t := range m.tables {
		out = append(out, domain.TableView{Table: *t})
	}
	return out, nil
}

func (m *MockRegistry) MarkOccupied(ctx context.Context, number, orderNumber string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[number]
	if !ok {
		return nil, fmt.Errorf("%w: table %s", domain.ErrNotFound, number)
	}
	if t.Status != domain.TableAvailable {
		return nil, fmt.Errorf("%w: table %s is %s", domain.ErrConflict, number, t.Status)
	}
	t.Status = domain.TableOccupied
	t.CurrentOrder = &orderNumber
	cp := *t
	return &cp, nil
}

func (m *MockRegistry) MarkNeedsCleaning(ctx context.Context, number string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[number]
	if !ok {
		return nil, fmt.Errorf("%w: table %s", domain.ErrNotFound, number)
	}
	if t.Status == domain.TableOccupied {
		t.Status = domain.TableNeedsCleaning
	}
	cp := *t
	return &cp, nil
}

func (m *MockRegistry) MarkAvailable(ctx context.Context, number string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[number]
	if !ok {
		return nil, fmt.Errorf("%w: table %s", domain.ErrNotFound, number)
	}
	t.Status = domain.TableAvailable
	t.CurrentOrder = nil
	t.LastCleanedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

func (m *MockRegistry) Vacate(ctx context.Context, number string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[number]
	if !ok {
		return nil, fmt.Errorf("%w: table %s", domain.ErrNotFound, number)
	}
	t.Status = domain.TableAvailable
	t.CurrentOrder = nil
	cp := *t
	return &cp, nil
}

// MockLedger tracks registrations and point awards. It normalizes phone
// numbers the same way the real ledger does, since callers rely on the
// returned key.
type MockLedger struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	Awards    int

	AwardPointsFunc func(ctx context.Context, phone string, orderTotal float64) (int, error)
}

func NewMockLedger() *MockLedger {
	return &MockLedger{customers: make(map[string]*domain.Customer)}
}

func (m *MockLedger) Register(ctx context.Context, phone, name string) (*domain.Customer, error) {
	phone, err := loyalty.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.customers[phone]; ok {
		if name != "" {
			c.Name = name
		}
		cp := *c
		return &cp, nil
	}
	c := &domain.Customer{Phone: phone, Name: name}
	m.customers[phone] = c
	cp := *c
	return &cp, nil
}

func (m *MockLedger) AwardPoints(ctx context.Context, phone string, orderTotal float64) (int, error) {
	if m.AwardPointsFunc != nil {
		return m.AwardPointsFunc(ctx, phone, orderTotal)
	}
	phone, err := loyalty.NormalizePhone(phone)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[phone]
	if !ok {
		return 0, fmt.Errorf("%w: customer %s", domain.ErrNotFound, phone)
	}
	m.Awards++
	c.Points += int(orderTotal)
	return c.Points, nil
}

func (m *MockLedger) Lookup(ctx context.Context, phone string) (*domain.Customer, error) {
	phone, err := loyalty.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[phone]
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, phone)
	}
	cp := *c
	return &cp, nil
}

// MockPublisher records everything published.
type MockPublisher struct {
	mu     sync.Mutex
	events []domain.Event

	PublishFunc func(ctx context.Context, ev domain.Event) error
}

func NewMockPublisher() *MockPublisher { return &MockPublisher{} }

func (m *MockPublisher) Publish(ctx context.Context, ev domain.Event) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, ev)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *MockPublisher) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out
}
