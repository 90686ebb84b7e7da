package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

// MenuRepository is read-only here: menu CRUD belongs to the menu
// collaborator. The lifecycle service uses it to resolve item identity and
// price at order-creation time.
type MenuRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
}

type menuPG struct {
	pool *pgxpool.Pool
}

func NewMenuRepository(pool *pgxpool.Pool) MenuRepository { return &menuPG{pool: pool} }

func (r *menuPG) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, price, available
		FROM menu_items WHERE available ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer rows.Close()

	var out []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Available); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *menuPG) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	var m domain.MenuItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, category, price, available FROM menu_items WHERE id=$1
	`, id).Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Available)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: menu item %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return &m, nil
}
