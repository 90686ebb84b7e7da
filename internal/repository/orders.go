package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

type OrdersRepository interface {
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, o *domain.Order) error
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]*domain.Order, error)

	// UpdateStatus is the compare-and-set for order status: the row changes
	// only if it is still in the expected status. Returns false when the
	// guard did not match (lost race or illegal request).
	UpdateStatus(ctx context.Context, number string, from, to domain.OrderStatus, completedAt *time.Time) (bool, error)

	// MarkPaid flips payment_status pending -> paid atomically. At most one
	// caller ever sees true for a given order.
	MarkPaid(ctx context.Context, number string, method domain.PaymentMethod) (bool, error)
}

type ordersPG struct {
	pool *pgxpool.Pool
}

func NewOrdersRepository(pool *pgxpool.Pool) OrdersRepository { return &ordersPG{pool: pool} }

func (r *ordersPG) NextSequence(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next order sequence: %w", err)
	}
	return n, nil
}

func (r *ordersPG) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders
			(order_number, order_type, table_number, customer_name, customer_phone,
			 total_amount, status, payment_status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())
		RETURNING id, created_at, updated_at
	`,
		o.Number, o.Type, o.TableNumber, o.CustomerName, o.CustomerPhone,
		o.TotalAmount, o.Status, o.PaymentStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price, special_instructions)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, o.ID, it.MenuItemID, it.Name, it.Quantity, it.Price, it.Instructions).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", it.MenuItemID, err)
		}
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, order_number, order_type, table_number, customer_name, customer_phone,
	total_amount, status, payment_status, payment_method, created_at, updated_at, completed_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.Number, &o.Type, &o.TableNumber, &o.CustomerName, &o.CustomerPhone,
		&o.TotalAmount, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordersPG) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, number)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", number, err)
	}
	if err := r.attachItems(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *ordersPG) List(ctx context.Context, activeOnly bool) ([]*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	if activeOnly {
		q = `SELECT ` + orderColumns + ` FROM orders
			WHERE status NOT IN ('completed','cancelled') ORDER BY created_at DESC`
	}
	return r.queryOrders(ctx, q)
}

func (r *ordersPG) ListByPhone(ctx context.Context, phone string) ([]*domain.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders
		WHERE customer_phone=$1 ORDER BY created_at DESC`, phone)
}

func (r *ordersPG) queryOrders(ctx context.Context, q string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ordersPG) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity, price, special_instructions
		FROM order_items WHERE order_id = ANY($1) ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.Price, &it.Instructions); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *ordersPG) UpdateStatus(ctx context.Context, number string, from, to domain.OrderStatus, completedAt *time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status=$3, updated_at=now(), completed_at=COALESCE(completed_at, $4)
		WHERE order_number=$1 AND status=$2
	`, number, from, to, completedAt)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ordersPG) MarkPaid(ctx context.Context, number string, method domain.PaymentMethod) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET payment_status='paid', payment_method=$2, updated_at=now()
		WHERE order_number=$1 AND payment_status='pending'
	`, number, method)
	if err != nil {
		return false, fmt.Errorf("mark order paid: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
