package inventory

import (
	"context"

	"ecom-api/internal/domain"
)

// Repository is the stock ledger. Every stock mutation in the system goes
// through it or through the checkout/cancel transactions, all of which lock
// the inventory row before writing.
type Repository interface {
	List(ctx context.Context) ([]domain.InventoryRecord, error)
	GetByID(ctx context.Context, id string) (*domain.InventoryRecord, error)
	GetByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error)
	Adjust(ctx context.Context, id string, delta int) (*domain.InventoryRecord, error)
	AdjustByProduct(ctx context.Context, productID string, delta int) (*domain.InventoryRecord, error)
	SetCount(ctx context.Context, id string, value int) (*domain.InventoryRecord, error)
}
