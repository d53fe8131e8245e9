package order

import (
	"context"
	"errors"
	"io"
	"log"

	"ecom-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

type checkoutLine struct {
	productID   string
	productName string
	price       decimal.Decimal
	quantity    int
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, userID string, ship ShippingDetails) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}

	// Lines in product order so concurrent checkouts lock ledger rows in the
	// same sequence.
	rows, err := tx.Query(ctx, `
SELECT cl.product_id::text, p.name, p.price, cl.quantity
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1
ORDER BY cl.product_id ASC
`, cartID)
	if err != nil {
		return nil, err
	}
	var lines []checkoutLine
	for rows.Next() {
		var l checkoutLine
		if err := rows.Scan(&l.productID, &l.productName, &l.price, &l.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		var stock int
		err := tx.QueryRow(ctx, `SELECT stock_count FROM inventories WHERE product_id = $1 FOR UPDATE`, l.productID).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrInventoryNotFound
			}
			return nil, err
		}
		if stock < l.quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   l.productID,
				ProductName: l.productName,
				Requested:   l.quantity,
				Available:   stock,
			}
		}
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}

	order := domain.Order{
		UserID:   userID,
		FullName: ship.FullName,
		Email:    ship.Email,
		Address:  ship.Address,
		Phone:    ship.Phone,
		Total:    total,
		Status:   domain.StatusPending,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, full_name, email, address, phone, total, status)
VALUES ($1, $2, $3, $4, $5, $6, 'pending')
RETURNING id::text, created_at, updated_at
`, userID, ship.FullName, ship.Email, ship.Address, ship.Phone, total).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.logger.Printf("order repo: insert order user=%s error=%v", userID, err)
		return nil, err
	}

	for _, l := range lines {
		line := domain.OrderLine{
			OrderID:     order.ID,
			ProductID:   l.productID,
			ProductName: l.productName,
			Quantity:    l.quantity,
			Price:       l.price,
			Subtotal:    l.price.Mul(decimal.NewFromInt(int64(l.quantity))),
		}
		err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`, order.ID, l.productID, l.quantity, l.price).Scan(&line.ID)
		if err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)

		if _, err := tx.Exec(ctx, `
UPDATE inventories
SET stock_count = stock_count - $1, last_updated = now()
WHERE product_id = $2
`, l.quantity, l.productID); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: checkout user=%s order=%s total=%s lines=%d", userID, order.ID, total, len(order.Lines))
	return &order, nil
}

func (r *postgresRepo) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status domain.OrderStatus
	err = tx.QueryRow(ctx, `
SELECT status FROM orders WHERE id = $1 AND user_id = $2 FOR UPDATE
`, orderID, userID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !domain.CanTransition(status, domain.StatusCancelled) {
		return nil, &domain.InvalidTransitionError{From: status, To: domain.StatusCancelled}
	}

	if _, err := tx.Exec(ctx, `
UPDATE orders SET status = 'cancelled', updated_at = now() WHERE id = $1
`, orderID); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT product_id::text, quantity FROM order_lines WHERE order_id = $1 ORDER BY product_id ASC
`, orderID)
	if err != nil {
		return nil, err
	}
	type credit struct {
		productID string
		quantity  int
	}
	var credits []credit
	for rows.Next() {
		var c credit
		if err := rows.Scan(&c.productID, &c.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		credits = append(credits, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Recreate the ledger row if it was deleted since purchase; the credit is
	// never dropped.
	for _, c := range credits {
		if _, err := tx.Exec(ctx, `
INSERT INTO inventories (product_id, stock_count)
VALUES ($1, $2)
ON CONFLICT (product_id) DO UPDATE SET stock_count = inventories.stock_count + EXCLUDED.stock_count, last_updated = now()
`, c.productID, c.quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: cancelled order=%s credits=%d", orderID, len(credits))
	return r.GetByID(ctx, userID, orderID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status domain.OrderStatus
	var userID string
	err = tx.QueryRow(ctx, `
SELECT status, user_id FROM orders WHERE id = $1 FOR UPDATE
`, orderID).Scan(&status, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !domain.CanTransition(status, to) {
		return nil, &domain.InvalidTransitionError{From: status, To: to}
	}

	if _, err := tx.Exec(ctx, `
UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
`, to, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID, orderID)
}

const selectOrder = `
SELECT id::text, user_id, full_name, email, address, phone, total, status, created_at, updated_at
FROM orders
`

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, selectOrder+`WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		r.logger.Printf("order repo: list user=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.lines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	var o domain.Order
	err := scanOrder(r.pool.QueryRow(ctx, selectOrder+`WHERE id = $1 AND user_id = $2`, orderID, userID), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	lines, err := r.lines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *postgresRepo) lines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT ol.id::text, ol.order_id::text, ol.product_id::text, p.name, ol.quantity, ol.price
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
WHERE ol.order_id = $1
ORDER BY ol.product_id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		l.Subtotal = l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.FullName, &o.Email, &o.Address, &o.Phone, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
}
