package order

import (
	"context"

	"ecom-api/internal/domain"
)

// ShippingDetails are the checkout fields snapshotted onto the order.
type ShippingDetails struct {
	FullName string
	Email    string
	Address  string
	Phone    string
}

type Repository interface {
	// CreateFromCart converts the user's cart into a pending order: it
	// re-validates every line against the ledger under row locks, snapshots the
	// lines with their current prices, debits the ledger and clears the cart,
	// all in one transaction.
	CreateFromCart(ctx context.Context, userID string, ship ShippingDetails) (*domain.Order, error)
	// Cancel flips the order to cancelled and credits every line back to the
	// ledger, in one transaction.
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
	// UpdateStatus applies an administrative status transition.
	UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
}
