package domain

import "time"

// InventoryRecord is the ledger entry for one product. stock_count is the
// single authoritative stock value; Product.Stock is a read mirror joined from
// it, so the two can never diverge.
type InventoryRecord struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	StockCount  int       `json:"stockCount"`
	LastUpdated time.Time `json:"lastUpdated"`
}
