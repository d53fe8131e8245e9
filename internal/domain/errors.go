package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrOutOfStock indicates a purchase against a product with no ledger entry.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrInventoryNotFound indicates a product exists without a ledger entry.
	ErrInventoryNotFound = errors.New("product has no inventory record")
	// ErrEmptyCart indicates a checkout attempt on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError reports a rejected input value. No state changes when it is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientStockError reports that the ledger holds less stock than an
// operation requires.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("not enough stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

// InvalidTransitionError reports an illegal order status change.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}
