package server

import (
	"context"
	"fmt"

	"restaurant-pos/internal/domain"
)

// MockLifecycle is a scriptable order.Lifecycle.
type MockLifecycle struct {
	CreateFunc        func(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	AdvanceFunc       func(ctx context.Context, number string, target domain.OrderStatus) (*domain.Order, error)
	RecordPaymentFunc func(ctx context.Context, req domain.RecordPaymentRequest) (*domain.Payment, error)
	GetFunc           func(ctx context.Context, number string) (*domain.Order, error)
	ListFunc          func(ctx context.Context, activeOnly bool) ([]*domain.Order, error)
	ListByPhoneFunc   func(ctx context.Context, phone string) ([]*domain.Order, error)
}

func (m *MockLifecycle) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Order{Number: "ORD_20250611_001", Status: domain.StatusPending}, nil
}

func (m *MockLifecycle) Advance(ctx context.Context, number string, target domain.OrderStatus) (*domain.Order, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, number, target)
	}
	return &domain.Order{Number: number, Status: target}, nil
}

func (m *MockLifecycle) RecordPayment(ctx context.Context, req domain.RecordPaymentRequest) (*domain.Payment, error) {
	if m.RecordPaymentFunc != nil {
		return m.RecordPaymentFunc(ctx, req)
	}
	return &domain.Payment{ID: "pay-1", OrderNumber: req.OrderNumber, Amount: req.Amount, Method: req.Method}, nil
}

func (m *MockLifecycle) Get(ctx context.Context, number string) (*domain.Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, number)
	}
	return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, number)
}

func (m *MockLifecycle) List(ctx context.Context, activeOnly bool) ([]*domain.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *MockLifecycle) ListByPhone(ctx context.Context, phone string) ([]*domain.Order, error) {
	if m.ListByPhoneFunc != nil {
		return m.ListByPhoneFunc(ctx, phone)
	}
	return nil, nil
}

// MockRegistry is a scriptable table.Registry.
type MockRegistry struct {
	GetFunc               func(ctx context.Context, number string) (*domain.Table, error)
	ListFunc              func(ctx context.Context) ([]domain.TableView, error)
	MarkOccupiedFunc      func(ctx context.Context, number, orderNumber string) (*domain.Table, error)
	MarkNeedsCleaningFunc func(ctx context.Context, number string) (*domain.Table, error)
	MarkAvailableFunc     func(ctx context.Context, number string) (*domain.Table, error)
	VacateFunc            func(ctx context.Context, number string) (*domain.Table, error)
}

func (m *MockRegistry) Get(ctx context.Context, number string) (*domain.Table, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, number)
	}
	return &domain.Table{Number: number, Status: domain.TableAvailable}, nil
}

func (m *MockRegistry) List(ctx context.Context) ([]domain.TableView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRegistry) MarkOccupied(ctx context.Context, number, orderNumber string) (*domain.Table, error) {
	if m.MarkOccupiedFunc != nil {
		return m.MarkOccupiedFunc(ctx, number, orderNumber)
	}
	return &domain.Table{Number: number, Status: domain.TableOccupied}, nil
}

func (m *MockRegistry) MarkNeedsCleaning(ctx context.Context, number string) (*domain.Table, error) {
	if m.MarkNeedsCleaningFunc != nil {
		return m.MarkNeedsCleaningFunc(ctx, number)
	}
	return &domain.Table{Number: number, Status: domain.TableNeedsCleaning}, nil
}

func (m *MockRegistry) MarkAvailable(ctx context.Context, number string) (*domain.Table, error) {
	if m.MarkAvailableFunc != nil {
		return m.MarkAvailableFunc(ctx, number)
	}
	return &domain.Table{Number: number, Status: domain.TableAvailable}, nil
}

func (m *MockRegistry) Vacate(ctx context.Context, number string) (*domain.Table, error) {
	if m.VacateFunc != nil {
		return m.VacateFunc(ctx, number)
	}
	return &domain.Table{Number: number, Status: domain.TableAvailable}, nil
}

// MockLedger is a scriptable loyalty.Ledger.
type MockLedger struct {
	RegisterFunc    func(ctx context.Context, phone, name string) (*domain.Customer, error)
	AwardPointsFunc func(ctx context.Context, phone string, orderTotal float64) (int, error)
	LookupFunc      func(ctx context.Context, phone string) (*domain.Customer, error)
}

func (m *MockLedger) Register(ctx context.Context, phone, name string) (*domain.Customer, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, phone, name)
	}
	return &domain.Customer{Phone: phone, Name: name}, nil
}

func (m *MockLedger) AwardPoints(ctx context.Context, phone string, orderTotal float64) (int, error) {
	if m.AwardPointsFunc != nil {
		return m.AwardPointsFunc(ctx, phone, orderTotal)
	}
	return 0, nil
}

func (m *MockLedger) Lookup(ctx context.Context, phone string) (*domain.Customer, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, phone)
	}
	return &domain.Customer{Phone: phone}, nil
}

// MockMenu serves a fixed menu list.
type MockMenu struct {
	ListFunc func(ctx context.Context) ([]domain.MenuItem, error)
	GetFunc  func(ctx context.Context, id string) (*domain.MenuItem, error)
}

func (m *MockMenu) List(ctx context.Context) ([]domain.MenuItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.MenuItem{{ID: "nasi-lemak", Name: "Nasi Lemak Special", Price: 12.90, Available: true}}, nil
}

func (m *MockMenu) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: menu item %s", domain.ErrNotFound, id)
}
