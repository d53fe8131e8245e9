package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is one user's mutable cart. Totals are derived from the lines on every
// read and never persisted.
type Cart struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Lines      []CartLine      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	TotalItems int             `json:"totalItems"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type CartLine struct {
	ID          string          `json:"id"`
	CartID      string          `json:"cartId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	AddedAt     time.Time       `json:"addedAt"`
}
