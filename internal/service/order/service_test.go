package order

import (
	"context"
	"errors"
	"testing"

	"ecom-api/internal/domain"
	orderrepo "ecom-api/internal/repository/order"
)

type stubRepo struct {
	order      *domain.Order
	err        error
	lastStatus domain.OrderStatus
	called     bool
}

func (s *stubRepo) CreateFromCart(ctx context.Context, userID string, ship orderrepo.ShippingDetails) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRepo) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	s.called = true
	return s.order, s.err
}

func (s *stubRepo) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	s.called = true
	s.lastStatus = to
	return s.order, s.err
}

func (s *stubRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if s.order == nil {
		return nil, s.err
	}
	return []domain.Order{*s.order}, s.err
}

func (s *stubRepo) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.order, s.err
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	_, err := svc.UpdateStatus(context.Background(), "o1", domain.OrderStatus("refunded"))
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.called {
		t.Fatalf("repo must not be called for unknown status")
	}
}

func TestUpdateStatus_ForwardsKnownStatus(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", Status: domain.StatusProcessing}}
	svc := New(repo)

	got, err := svc.UpdateStatus(context.Background(), "o1", domain.StatusProcessing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if repo.lastStatus != domain.StatusProcessing || got.Status != domain.StatusProcessing {
		t.Fatalf("unexpected result: forwarded=%s got=%+v", repo.lastStatus, got)
	}
}

func TestCancel_PropagatesInvalidTransition(t *testing.T) {
	repo := &stubRepo{err: &domain.InvalidTransitionError{From: domain.StatusShipped, To: domain.StatusCancelled}}
	svc := New(repo)

	_, err := svc.Cancel(context.Background(), "u1", "o1")
	var transition *domain.InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}
