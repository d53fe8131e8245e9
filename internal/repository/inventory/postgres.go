package inventory

import (
	"context"
	"errors"
	"io"
	"log"

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

const selectRecord = `
SELECT i.id::text, i.product_id::text, p.name, i.stock_count, i.last_updated
FROM inventories i
JOIN products p ON p.id = i.product_id
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	rows, err := r.pool.Query(ctx, selectRecord+`ORDER BY p.name ASC`)
	if err != nil {
		r.logger.Printf("inventory repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.InventoryRecord
	for rows.Next() {
		var rec domain.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.ProductName, &rec.StockCount, &rec.LastUpdated); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	return r.fetch(ctx, selectRecord+`WHERE i.id = $1`, id)
}

func (r *postgresRepo) GetByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	return r.fetch(ctx, selectRecord+`WHERE i.product_id = $1`, productID)
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg interface{}) (*domain.InventoryRecord, error) {
	var rec domain.InventoryRecord
	err := r.pool.QueryRow(ctx, q, arg).Scan(&rec.ID, &rec.ProductID, &rec.ProductName, &rec.StockCount, &rec.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("inventory repo: get error=%v", err)
		return nil, err
	}
	return &rec, nil
}

// Adjust applies a signed delta to the ledger under a row lock. A delta that
// would take the count below zero fails without writing anything.
func (r *postgresRepo) Adjust(ctx context.Context, id string, delta int) (*domain.InventoryRecord, error) {
	return r.adjust(ctx, `WHERE i.id = $1`, id, delta)
}

func (r *postgresRepo) AdjustByProduct(ctx context.Context, productID string, delta int) (*domain.InventoryRecord, error) {
	return r.adjust(ctx, `WHERE i.product_id = $1`, productID, delta)
}

func (r *postgresRepo) adjust(ctx context.Context, where string, arg string, delta int) (*domain.InventoryRecord, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var rec domain.InventoryRecord
	err = tx.QueryRow(ctx, `
SELECT i.id::text, i.product_id::text, p.name, i.stock_count
FROM inventories i
JOIN products p ON p.id = i.product_id
`+where+` FOR UPDATE OF i`, arg).Scan(&rec.ID, &rec.ProductID, &rec.ProductName, &rec.StockCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if rec.StockCount+delta < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
			Requested:   -delta,
			Available:   rec.StockCount,
		}
	}

	if err := tx.QueryRow(ctx, `
UPDATE inventories
SET stock_count = stock_count + $1, last_updated = now()
WHERE id = $2
RETURNING stock_count, last_updated
`, delta, rec.ID).Scan(&rec.StockCount, &rec.LastUpdated); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("inventory repo: adjust id=%s delta=%d stock=%d", rec.ID, delta, rec.StockCount)
	return &rec, nil
}

// SetCount overwrites the ledger value, for administrative corrections.
func (r *postgresRepo) SetCount(ctx context.Context, id string, value int) (*domain.InventoryRecord, error) {
	const q = `
UPDATE inventories
SET stock_count = $1, last_updated = now()
WHERE id = $2
RETURNING id::text, product_id::text, stock_count, last_updated
`
	var rec domain.InventoryRecord
	err := r.pool.QueryRow(ctx, q, value, id).Scan(&rec.ID, &rec.ProductID, &rec.StockCount, &rec.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("inventory repo: set id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("inventory repo: set id=%s stock=%d", rec.ID, rec.StockCount)
	return &rec, nil
}
