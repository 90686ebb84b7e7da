package table

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/notifier"
	"restaurant-pos/internal/repository"
)

// Registry owns table occupancy. Occupancy mirrors the order lifecycle:
// tables become occupied when an order opens, needs_cleaning when it
// completes, and only a staff cleaning action makes them available again.
type Registry interface {
	Get(ctx context.Context, number string) (*domain.Table, error)
	List(ctx context.Context) ([]domain.TableView, error)
	MarkOccupied(ctx context.Context, number, orderNumber string) (*domain.Table, error)
	MarkNeedsCleaning(ctx context.Context, number string) (*domain.Table, error)
	MarkAvailable(ctx context.Context, number string) (*domain.Table, error)
	Vacate(ctx context.Context, number string) (*domain.Table, error)
}

type Service struct {
	repo repository.TablesRepository
	pub  notifier.Publisher
	lg   *logger.Logger
	now  func() time.Time
}

func NewService(repo repository.TablesRepository, pub notifier.Publisher, lg *logger.Logger) *Service {
	return &Service{repo: repo, pub: pub, lg: lg, now: time.Now}
}

func (s *Service) Get(ctx context.Context, number string) (*domain.Table, error) {
	return s.repo.Get(ctx, number)
}

func (s *Service) List(ctx context.Context) ([]domain.TableView, error) {
	tables, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]domain.TableView, 0, len(tables))
	for _, t := range tables {
		out = append(out, domain.TableView{
			Table:       *t,
			Cleanliness: CleanlinessOf(t.LastCleanedAt, now),
		})
	}
	return out, nil
}

// MarkOccupied claims a table for an order. Exactly one of two concurrent
// claims succeeds; the loser gets ErrConflict.
func (s *Service) MarkOccupied(ctx context.Context, number, orderNumber string) (*domain.Table, error) {
	ok, err := s.repo.Occupy(ctx, number, orderNumber)
	if err != nil {
		return nil, err
	}
	if !ok {
		t, err := s.repo.Get(ctx, number)
		if err != nil {
			return nil, err // unknown table: ErrNotFound from the repo
		}
		return nil, fmt.Errorf("%w: table %s is %s", domain.ErrConflict, number, t.Status)
	}
	return s.emit(ctx, number, "table_occupied")
}

// MarkNeedsCleaning is called by the order lifecycle on completion.
// Idempotent: repeating it, or calling it on a non-occupied table, is a
// no-op at the storage level.
func (s *Service) MarkNeedsCleaning(ctx context.Context, number string) (*domain.Table, error) {
	if err := s.repo.SetNeedsCleaning(ctx, number); err != nil {
		return nil, err
	}
	return s.emit(ctx, number, "table_needs_cleaning")
}

// MarkAvailable is the explicit staff cleaning action.
func (s *Service) MarkAvailable(ctx context.Context, number string) (*domain.Table, error) {
	if err := s.repo.SetAvailable(ctx, number); err != nil {
		return nil, err
	}
	return s.emit(ctx, number, "table_cleaned")
}

// Vacate releases a table whose order was cancelled before anything reached
// it; the table goes straight back to available.
func (s *Service) Vacate(ctx context.Context, number string) (*domain.Table, error) {
	if err := s.repo.Vacate(ctx, number); err != nil {
		return nil, err
	}
	return s.emit(ctx, number, "table_vacated")
}

func (s *Service) emit(ctx context.Context, number, action string) (*domain.Table, error) {
	t, err := s.repo.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	ev := domain.Event{Type: domain.EventTableUpdated, Table: t}
	if err := s.pub.Publish(ctx, ev); err != nil {
		// Broadcast is best effort; clients reconcile on their next fetch.
		s.lg.Error("event_publish_failed", err, map[string]any{"type": ev.Type, "table": number})
	}
	s.lg.Debug(action, map[string]any{"table": number, "status": t.Status})
	return t, nil
}
