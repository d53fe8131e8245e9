package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"ecom-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Product.Stock is not a column; it is joined from the ledger so the two read
// paths can never disagree.
const selectProduct = `
SELECT p.id::text, p.name, COALESCE(p.description, ''), p.price, p.category_id::text, COALESCE(i.stock_count, 0), COALESCE(p.image_url, ''), p.created_at
FROM products p
LEFT JOIN inventories i ON i.product_id = p.id
`

func (r *postgresRepo) List(ctx context.Context, filters ListFilters) ([]domain.Product, error) {
	q := selectProduct
	var conds []string
	var args []interface{}
	if filters.CategoryID != "" {
		args = append(args, filters.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filters.MinPrice != nil {
		args = append(args, *filters.MinPrice)
		conds = append(conds, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if filters.MaxPrice != nil {
		args = append(args, *filters.MaxPrice)
		conds = append(conds, fmt.Sprintf("p.price <= $%d", len(args)))
	}
	if len(conds) > 0 {
		q += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	q += "ORDER BY p.created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, selectProduct+`WHERE p.id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.Stock, &p.ImageURL, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetDetail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	const q = `
SELECT p.id::text, p.name, COALESCE(p.description, ''), p.price, p.category_id::text, COALESCE(i.stock_count, 0), COALESCE(p.image_url, ''), p.created_at,
       c.id::text, c.name, COALESCE(c.description, ''), c.created_at,
       i.id::text, i.stock_count, i.last_updated
FROM products p
JOIN categories c ON c.id = p.category_id
LEFT JOIN inventories i ON i.product_id = p.id
WHERE p.id = $1
`
	var d domain.ProductDetail
	var cat domain.Category
	var invID *string
	var invStock *int
	var invUpdated *time.Time
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.Price, &d.CategoryID, &d.Stock, &d.ImageURL, &d.CreatedAt,
		&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt,
		&invID, &invStock, &invUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: detail id=%s error=%v", id, err)
		return nil, err
	}
	d.Category = &cat
	if invID != nil {
		d.Inventory = &domain.InventoryRecord{
			ID:          *invID,
			ProductID:   d.ID,
			ProductName: d.Name,
			StockCount:  *invStock,
			LastUpdated: *invUpdated,
		}
	}
	return &d, nil
}

// Create inserts the product and its ledger entry together; a product never
// exists without an inventory row unless the row is deleted later.
func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p := domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		Stock:       in.InitialStock,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO products (name, description, price, category_id, image_url)
VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''))
RETURNING id::text, created_at
`, in.Name, in.Description, in.Price, in.CategoryID, in.ImageURL).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", in.Name, err)
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO inventories (product_id, stock_count)
VALUES ($1, $2)
`, p.ID, in.InitialStock); err != nil {
		r.logger.Printf("product repo: create inventory product_id=%s error=%v", p.ID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%s stock=%d", p.ID, p.Name, p.Stock)
	return &p, nil
}

// Update rewrites the product fields and sets the ledger to the given absolute
// stock, recreating the inventory row if it went missing.
func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p := domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
	}
	err = tx.QueryRow(ctx, `
UPDATE products
SET name = $1, description = NULLIF($2, ''), price = $3, category_id = $4, image_url = NULLIF($5, '')
WHERE id = $6
RETURNING created_at
`, in.Name, in.Description, in.Price, in.CategoryID, in.ImageURL, id).Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO inventories (product_id, stock_count)
VALUES ($1, $2)
ON CONFLICT (product_id) DO UPDATE SET stock_count = EXCLUDED.stock_count, last_updated = now()
`, id, in.Stock); err != nil {
		r.logger.Printf("product repo: update inventory product_id=%s error=%v", id, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM inventories WHERE product_id = $1`, id); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}
