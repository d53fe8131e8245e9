package inventory

import (
	"context"

	"ecom-api/internal/domain"
	inventoryrepo "ecom-api/internal/repository/inventory"
)

type Service struct {
	ledger ledgerRepo
}

type ledgerRepo interface {
	List(ctx context.Context) ([]domain.InventoryRecord, error)
	GetByID(ctx context.Context, id string) (*domain.InventoryRecord, error)
	Adjust(ctx context.Context, id string, delta int) (*domain.InventoryRecord, error)
	SetCount(ctx context.Context, id string, value int) (*domain.InventoryRecord, error)
}

func New(ledger inventoryrepo.Repository) *Service {
	return &Service{ledger: ledger}
}

func (s *Service) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	return s.ledger.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	return s.ledger.GetByID(ctx, id)
}

func (s *Service) AddStock(ctx context.Context, id string, quantity int) (*domain.InventoryRecord, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return s.ledger.Adjust(ctx, id, quantity)
}

func (s *Service) RemoveStock(ctx context.Context, id string, quantity int) (*domain.InventoryRecord, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return s.ledger.Adjust(ctx, id, -quantity)
}

// Set overwrites the ledger value, for administrative corrections.
func (s *Service) Set(ctx context.Context, id string, value int) (*domain.InventoryRecord, error) {
	if value < 0 {
		return nil, &domain.ValidationError{Field: "stockCount", Reason: "must not be negative"}
	}
	return s.ledger.SetCount(ctx, id, value)
}
