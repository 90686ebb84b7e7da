package order

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/notifier"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/service/loyalty"
	"restaurant-pos/internal/service/table"
)

// priceTolerance absorbs float rounding when cross-checking client-supplied
// prices and payment amounts against server-side values.
const priceTolerance = 0.005

// Lifecycle is the single authority over order state. Nothing else writes
// status or payment status.
type Lifecycle interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	Advance(ctx context.Context, number string, target domain.OrderStatus) (*domain.Order, error)
	RecordPayment(ctx context.Context, req domain.RecordPaymentRequest) (*domain.Payment, error)
	Get(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]*domain.Order, error)
}

type Service struct {
	orders   repository.OrdersRepository
	menu     repository.MenuRepository
	payments repository.PaymentsRepository
	tables   table.Registry
	loyalty  loyalty.Ledger
	pub      notifier.Publisher
	lg       *logger.Logger
	now      func() time.Time
}

func NewService(
	orders repository.OrdersRepository,
	menu repository.MenuRepository,
	payments repository.PaymentsRepository,
	tables table.Registry,
	ledger loyalty.Ledger,
	pub notifier.Publisher,
	lg *logger.Logger,
) *Service {
	return &Service{
		orders:   orders,
		menu:     menu,
		payments: payments,
		tables:   tables,
		loyalty:  ledger,
		pub:      pub,
		lg:       lg,
		now:      time.Now,
	}
}

// Create validates the cart, resolves every line item against the menu,
// computes the total server-side and persists the order as pending. For
// dine-in orders the table is claimed first; a table can hold at most one
// active order.
func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if !req.OrderType.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrValidation, req.OrderType)
	}
	if req.OrderType == domain.TypeDineIn && req.TableNumber == nil {
		return nil, fmt.Errorf("%w: dine_in order requires a table", domain.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domain.ErrValidation)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	total := 0.0
	for _, in := range req.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for item %s", domain.ErrValidation, in.MenuItemID)
		}
		mi, err := s.menu.Get(ctx, in.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown menu item %s", domain.ErrValidation, in.MenuItemID)
		}
		if !mi.Available {
			return nil, fmt.Errorf("%w: menu item %s is unavailable", domain.ErrValidation, in.MenuItemID)
		}
		// The menu price is authoritative; a client price is only a
		// cross-check against a stale menu on the client's side.
		if in.Price != 0 && math.Abs(in.Price-mi.Price) > priceTolerance {
			return nil, fmt.Errorf("%w: price for %s changed, refresh the menu", domain.ErrValidation, in.MenuItemID)
		}
		item := domain.OrderItem{
			MenuItemID: mi.ID,
			Name:       mi.Name,
			Quantity:   in.Quantity,
			Price:      mi.Price,
		}
		if in.Instructions != "" {
			instr := in.Instructions
			item.Instructions = &instr
		}
		items = append(items, item)
		total += mi.Price * float64(in.Quantity)
	}

	o := &domain.Order{
		Type:          req.OrderType,
		TableNumber:   req.TableNumber,
		Items:         items,
		TotalAmount:   total,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
	}
	if req.CustomerName != "" {
		name := req.CustomerName
		o.CustomerName = &name
	}
	if req.CustomerPhone != "" {
		c, err := s.loyalty.Register(ctx, req.CustomerPhone, req.CustomerName)
		if err != nil {
			return nil, err
		}
		phone := c.Phone
		o.CustomerPhone = &phone
	}

	number, err := s.nextNumber(ctx)
	if err != nil {
		return nil, err
	}
	o.Number = number

	if o.TableNumber != nil {
		if _, err := s.tables.MarkOccupied(ctx, *o.TableNumber, o.Number); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		if o.TableNumber != nil {
			if _, verr := s.tables.Vacate(ctx, *o.TableNumber); verr != nil {
				s.lg.Error("table_release_failed", verr, map[string]any{"table": *o.TableNumber})
			}
		}
		return nil, err
	}

	s.lg.Info("order_created", map[string]any{
		"order_number": o.Number, "total": o.TotalAmount, "type": o.Type,
	})
	s.emit(ctx, domain.Event{Type: domain.EventOrderCreated, Order: o})
	return o, nil
}

// Advance moves an order along the status graph with an atomic
// compare-and-set keyed by the current status, so two concurrent calls
// cannot both succeed. Completion stamps completed_at once and flips the
// table to needs_cleaning, never straight to available.
func (s *Service) Advance(ctx context.Context, number string, target domain.OrderStatus) (*domain.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, target)
	}
	cur, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !CanTransition(cur.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, cur.Status, target)
	}

	var completedAt *time.Time
	if target == domain.StatusCompleted {
		t := s.now().UTC()
		completedAt = &t
	}

	ok, err := s.orders.UpdateStatus(ctx, number, cur.Status, target, completedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: someone else moved the order first.
		return nil, fmt.Errorf("%w: order %s is no longer %s", domain.ErrInvalidTransition, number, cur.Status)
	}

	if cur.TableNumber != nil {
		switch target {
		case domain.StatusCompleted:
			if _, err := s.tables.MarkNeedsCleaning(ctx, *cur.TableNumber); err != nil {
				s.lg.Error("table_cleaning_signal_failed", err, map[string]any{"table": *cur.TableNumber})
			}
		case domain.StatusCancelled:
			if _, err := s.tables.Vacate(ctx, *cur.TableNumber); err != nil {
				s.lg.Error("table_release_failed", err, map[string]any{"table": *cur.TableNumber})
			}
		}
	}

	updated, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	s.lg.Info("order_status_changed", map[string]any{
		"order_number": number, "from": cur.Status, "to": target,
	})
	s.emit(ctx, domain.Event{Type: domain.EventOrderUpdated, Order: updated})
	return updated, nil
}

// RecordPayment settles an order. The pending -> paid flip is atomic, so a
// retried payment fails with ErrAlreadyPaid and loyalty points are awarded
// at most once per order.
func (s *Service) RecordPayment(ctx context.Context, req domain.RecordPaymentRequest) (*domain.Payment, error) {
	if !req.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, req.Method)
	}
	o, err := s.orders.GetByNumber(ctx, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	if math.Abs(req.Amount-o.TotalAmount) > priceTolerance {
		return nil, fmt.Errorf("%w: got %.2f, order total is %.2f", domain.ErrAmountMismatch, req.Amount, o.TotalAmount)
	}
	if o.PaymentStatus == domain.PaymentPaid {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyPaid, o.Number)
	}

	ok, err := s.orders.MarkPaid(ctx, o.Number, req.Method)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyPaid, o.Number)
	}

	p := &domain.Payment{
		ID:          uuid.NewString(),
		OrderNumber: o.Number,
		Amount:      o.TotalAmount,
		Method:      req.Method,
		PaidAt:      s.now().UTC(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	if o.CustomerPhone != nil {
		if _, err := s.loyalty.AwardPoints(ctx, *o.CustomerPhone, o.TotalAmount); err != nil {
			// The payment stands; a failed award surfaces in the logs.
			s.lg.Error("points_award_failed", err, map[string]any{"order_number": o.Number})
		}
	}

	updated, err := s.orders.GetByNumber(ctx, o.Number)
	if err != nil {
		return nil, err
	}
	s.lg.Info("payment_recorded", map[string]any{
		"order_number": o.Number, "amount": p.Amount, "method": p.Method,
	})
	s.emit(ctx, domain.Event{Type: domain.EventPaymentProcessed, Payment: p, Order: updated})
	s.emit(ctx, domain.Event{Type: domain.EventOrderUpdated, Order: updated})
	return p, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.Order, error) {
	return s.orders.GetByNumber(ctx, number)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*domain.Order, error) {
	return s.orders.List(ctx, activeOnly)
}

func (s *Service) ListByPhone(ctx context.Context, phone string) ([]*domain.Order, error) {
	normalized, err := loyalty.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByPhone(ctx, normalized)
}

// nextNumber builds the display identifier: ORD_YYYYMMDD_NNN with a
// database-sequence suffix, unique and monotonic enough for a ticket rail.
func (s *Service) nextNumber(ctx context.Context) (string, error) {
	seq, err := s.orders.NextSequence(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD_%s_%03d", s.now().UTC().Format("20060102"), seq), nil
}

func (s *Service) emit(ctx context.Context, ev domain.Event) {
	if err := s.pub.Publish(ctx, ev); err != nil {
		// Best effort by contract: clients reconcile via full fetch.
		s.lg.Error("event_publish_failed", err, map[string]any{"type": ev.Type})
	}
}
