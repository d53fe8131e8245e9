package cart

import (
	"context"

	"ecom-api/internal/domain"
)

type Repository interface {
	// GetOrCreate returns the user's cart, creating it on first access.
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem upserts the (cart, product) line, incrementing the quantity when
	// the line already exists.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// SetItemQuantity overwrites the line quantity; a value <= 0 deletes the
	// line. Returns domain.ErrNotFound when the line does not exist.
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
}
