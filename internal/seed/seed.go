package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type productSeed struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string]string{
		"Apparel":  "Clothing and accessories",
		"Kitchen":  "Cookware and tableware",
		"Outdoors": "Camping and hiking gear",
	}
	categoryIDs := make(map[string]string, len(categories))
	for name, desc := range categories {
		id, err := ensureCategory(ctx, pool, name, desc)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{
			Name:        "Cotton T-Shirt",
			Description: "Soft cotton tee",
			Price:       decimal.RequireFromString("19.99"),
			Category:    "Apparel",
			Stock:       120,
		},
		{
			Name:        "Ceramic Mug",
			Description: "Stoneware mug, 350ml",
			Price:       decimal.RequireFromString("12.50"),
			Category:    "Kitchen",
			Stock:       80,
		},
		{
			Name:        "Trail Backpack",
			Description: "30L daypack with rain cover",
			Price:       decimal.RequireFromString("64.00"),
			Category:    "Outdoors",
			Stock:       35,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, description string) (string, error) {
	const q = `
INSERT INTO categories (name, description)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	var productID string
	err := pool.QueryRow(ctx, `SELECT id::text FROM products WHERE name = $1`, p.Name).Scan(&productID)
	if err == nil {
		_, err = pool.Exec(ctx, `
UPDATE products SET description = $1, price = $2, category_id = $3 WHERE id = $4
`, p.Description, p.Price, categoryID, productID)
		return err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err := pool.QueryRow(ctx, `
INSERT INTO products (name, description, price, category_id)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`, p.Name, p.Description, p.Price, categoryID).Scan(&productID); err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
INSERT INTO inventories (product_id, stock_count)
VALUES ($1, $2)
ON CONFLICT (product_id) DO UPDATE SET stock_count = EXCLUDED.stock_count, last_updated = now()
`, productID, p.Stock)
	return err
}
