package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// validID rejects malformed ids before Postgres turns them into a uuid
// cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

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

func (r *postgresRepo) Checkout(ctx context.Context, accountID, address, phone string, entries []domain.CartEntry) (*domain.Order, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCart
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ord domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (account_id, address, phone, status)
VALUES ($1, $2, $3, 'Pending')
RETURNING id::text, account_id::text, status, address, phone, created_at
`, accountID, address, phone).Scan(&ord.ID, &ord.AccountID, &ord.Status, &ord.Address, &ord.Phone, &ord.CreatedAt)
	if err != nil {
		r.logger.Printf("order repo: insert order account=%s error=%v", accountID, err)
		return nil, err
	}

	for _, entry := range entries {
		// Conditional decrement: the stock check and the write are one
		// statement, so two concurrent checkouts cannot both pass the
		// check and over-draft the same row. The returned price becomes
		// the immutable purchase-time snapshot.
		var priceCents int64
		err := tx.QueryRow(ctx, `
UPDATE products
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
RETURNING price_cents
`, entry.ProductID, entry.Quantity).Scan(&priceCents)
		if errors.Is(err, pgx.ErrNoRows) {
			var name string
			err := tx.QueryRow(ctx, `SELECT name FROM products WHERE id = $1`, entry.ProductID).Scan(&name)
			if errors.Is(err, pgx.ErrNoRows) {
				// Stale cart entry; the product is gone. Skip it.
				continue
			}
			if err != nil {
				return nil, err
			}
			r.logger.Printf("order repo: insufficient stock product=%s qty=%d", entry.ProductID, entry.Quantity)
			return nil, &domain.InsufficientStockError{ProductID: entry.ProductID, ProductName: name}
		}
		if err != nil {
			return nil, err
		}

		var item domain.OrderItem
		err = tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase_cents)
VALUES ($1, $2, $3, $4)
RETURNING id::text, order_id::text, product_id::text, quantity, price_at_purchase_cents
`, ord.ID, entry.ProductID, entry.Quantity, priceCents).Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchaseCents)
		if err != nil {
			return nil, err
		}
		ord.Items = append(ord.Items, item)
	}

	if len(ord.Items) == 0 {
		// Every entry pointed at a deleted product.
		return nil, domain.ErrEmptyCart
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: checkout account=%s order=%s items=%d", accountID, ord.ID, len(ord.Items))
	return &ord, nil
}

const orderColumns = `id::text, account_id::text, status, address, phone, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	var ord domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(&ord.ID, &ord.AccountID, &ord.Status, &ord.Address, &ord.Phone, &ord.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachItems(ctx, &ord); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *postgresRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE account_id = $1
ORDER BY created_at DESC
`
	return r.listOrders(ctx, q, accountID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`
	return r.listOrders(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: status id=%s -> %s", id, status)
	return nil
}

func (r *postgresRepo) listOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var ord domain.Order
		if err := rows.Scan(&ord.ID, &ord.AccountID, &ord.Status, &ord.Address, &ord.Phone, &ord.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) attachItems(ctx context.Context, ord *domain.Order) error {
	const q = `
SELECT id::text, order_id::text, product_id::text, quantity, price_at_purchase_cents
FROM order_items
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, q, ord.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchaseCents); err != nil {
			return err
		}
		ord.Items = append(ord.Items, item)
	}
	return rows.Err()
}
