package loyalty

import (
	"context"
	"time"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/repository"
)

// Ledger awards and reports loyalty points. Points only ever increase, and
// the caller (the order lifecycle) guarantees at most one award per order by
// gating on the payment transition.
type Ledger interface {
	Register(ctx context.Context, phone, name string) (*domain.Customer, error)
	AwardPoints(ctx context.Context, phone string, orderTotal float64) (int, error)
	Lookup(ctx context.Context, phone string) (*domain.Customer, error)
}

type Service struct {
	repo              repository.CustomersRepository
	weekendMultiplier int
	lg                *logger.Logger
	now               func() time.Time
}

func NewService(repo repository.CustomersRepository, weekendMultiplier int, lg *logger.Logger) *Service {
	if weekendMultiplier <= 0 {
		weekendMultiplier = 2
	}
	return &Service{repo: repo, weekendMultiplier: weekendMultiplier, lg: lg, now: time.Now}
}

// Register is an idempotent upsert: an existing customer keeps their points
// and may get a fresher name.
func (s *Service) Register(ctx context.Context, phone, name string) (*domain.Customer, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, normalized, name)
}

func (s *Service) AwardPoints(ctx context.Context, phone string, orderTotal float64) (int, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return 0, err
	}
	points := PointsFor(orderTotal, s.now().Weekday(), s.weekendMultiplier)
	if points == 0 {
		c, err := s.repo.Get(ctx, normalized)
		if err != nil {
			return 0, err
		}
		return c.Points, nil
	}
	total, err := s.repo.AddPoints(ctx, normalized, points)
	if err != nil {
		return 0, err
	}
	s.lg.Info("points_awarded", map[string]any{"phone": normalized, "points": points, "total": total})
	return total, nil
}

func (s *Service) Lookup(ctx context.Context, phone string) (*domain.Customer, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, normalized)
}
