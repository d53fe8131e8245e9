package order

import (
	"context"

	"ecom-api/internal/domain"
	orderrepo "ecom-api/internal/repository/order"
)

type Service struct {
	repo repo
}

type repo interface {
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

func New(r orderrepo.Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, userID, orderID)
}

func (s *Service) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.Cancel(ctx, userID, orderID)
}

// UpdateStatus applies an administrative transition; the repository enforces
// the transition table.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(to) {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.repo.UpdateStatus(ctx, orderID, to)
}
