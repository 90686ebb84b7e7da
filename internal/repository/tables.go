package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

type TablesRepository interface {
	Get(ctx context.Context, number string) (*domain.Table, error)
	List(ctx context.Context) ([]*domain.Table, error)

	// Occupy claims the table for an order, but only if it is still
	// available. Two orders racing for the same table cannot both win.
	Occupy(ctx context.Context, number, orderNumber string) (bool, error)

	// SetNeedsCleaning marks an occupied table dirty. Idempotent: calling it
	// on a table that is not occupied changes nothing.
	SetNeedsCleaning(ctx context.Context, number string) error

	// SetAvailable is the staff cleaning action: clears the order reference
	// and stamps last_cleaned_at.
	SetAvailable(ctx context.Context, number string) error

	// Vacate releases a table whose order was cancelled; nothing was served,
	// so last_cleaned_at is left untouched.
	Vacate(ctx context.Context, number string) error
}

type tablesPG struct {
	pool *pgxpool.Pool
}

func NewTablesRepository(pool *pgxpool.Pool) TablesRepository { return &tablesPG{pool: pool} }

const tableColumns = `number, capacity, status, current_order, last_cleaned_at, updated_at`

func (r *tablesPG) Get(ctx context.Context, number string) (*domain.Table, error) {
	var t domain.Table
	err := r.pool.QueryRow(ctx, `SELECT `+tableColumns+` FROM tables WHERE number=$1`, number).
		Scan(&t.Number, &t.Capacity, &t.Status, &t.CurrentOrder, &t.LastCleanedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: table %s", domain.ErrNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("get table %s: %w", number, err)
	}
	return &t, nil
}

func (r *tablesPG) List(ctx context.Context) ([]*domain.Table, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []*domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.Number, &t.Capacity, &t.Status, &t.CurrentOrder, &t.LastCleanedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *tablesPG) Occupy(ctx context.Context, number, orderNumber string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tables SET status='occupied', current_order=$2, updated_at=now()
		WHERE number=$1 AND status='available'
	`, number, orderNumber)
	if err != nil {
		return false, fmt.Errorf("occupy table %s: %w", number, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *tablesPG) SetNeedsCleaning(ctx context.Context, number string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE tables SET status='needs_cleaning', updated_at=now()
		WHERE number=$1 AND status='occupied'
	`, number)
	if err != nil {
		return fmt.Errorf("mark table %s needs cleaning: %w", number, err)
	}
	return nil
}

func (r *tablesPG) SetAvailable(ctx context.Context, number string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE tables SET status='available', current_order=NULL,
			last_cleaned_at=now(), updated_at=now()
		WHERE number=$1
	`, number)
	if err != nil {
		return fmt.Errorf("mark table %s available: %w", number, err)
	}
	return nil
}

func (r *tablesPG) Vacate(ctx context.Context, number string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE tables SET status='available', current_order=NULL, updated_at=now()
		WHERE number=$1 AND status <> 'available'
	`, number)
	if err != nil {
		return fmt.Errorf("vacate table %s: %w", number, err)
	}
	return nil
}
