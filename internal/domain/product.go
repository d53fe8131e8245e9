package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductDetail is the retrieve shape: product plus its category and ledger row.
type ProductDetail struct {
	Product
	Category  *Category        `json:"category,omitempty"`
	Inventory *InventoryRecord `json:"inventory,omitempty"`
}
