package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

type PaymentsRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByOrder(ctx context.Context, orderNumber string) ([]*domain.Payment, error)
}

type paymentsPG struct {
	pool *pgxpool.Pool
}

func NewPaymentsRepository(pool *pgxpool.Pool) PaymentsRepository { return &paymentsPG{pool: pool} }

func (r *paymentsPG) Create(ctx context.Context, p *domain.Payment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (id, order_number, amount, method, paid_at)
		VALUES ($1,$2,$3,$4,$5)
	`, p.ID, p.OrderNumber, p.Amount, p.Method, p.PaidAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *paymentsPG) ListByOrder(ctx context.Context, orderNumber string) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_number, amount, method, paid_at
		FROM payments WHERE order_number=$1 ORDER BY paid_at
	`, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderNumber, &p.Amount, &p.Method, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
