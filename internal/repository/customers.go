package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

type CustomersRepository interface {
	Get(ctx context.Context, phone string) (*domain.Customer, error)

	// Upsert registers the phone if unseen, otherwise refreshes the name and
	// leaves the point balance alone.
	Upsert(ctx context.Context, phone, name string) (*domain.Customer, error)

	// AddPoints applies an additive balance update and returns the new total.
	AddPoints(ctx context.Context, phone string, points int) (int, error)
}

type customersPG struct {
	pool *pgxpool.Pool
}

func NewCustomersRepository(pool *pgxpool.Pool) CustomersRepository { return &customersPG{pool: pool} }

const customerColumns = `phone, name, points, created_at, updated_at`

func (r *customersPG) Get(ctx context.Context, phone string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE phone=$1`, phone).
		Scan(&c.Phone, &c.Name, &c.Points, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, phone)
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *customersPG) Upsert(ctx context.Context, phone, name string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (phone, name, points, created_at, updated_at)
		VALUES ($1, $2, 0, now(), now())
		ON CONFLICT (phone) DO UPDATE SET
			name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE customers.name END,
			updated_at = now()
		RETURNING `+customerColumns+`
	`, phone, name).Scan(&c.Phone, &c.Name, &c.Points, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}
	return &c, nil
}

func (r *customersPG) AddPoints(ctx context.Context, phone string, points int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		UPDATE customers SET points = points + $2, updated_at = now()
		WHERE phone = $1
		RETURNING points
	`, phone, points).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: customer %s", domain.ErrNotFound, phone)
	}
	if err != nil {
		return 0, fmt.Errorf("add points: %w", err)
	}
	return total, nil
}
