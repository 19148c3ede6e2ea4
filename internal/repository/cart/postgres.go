package cart

import (
	"context"

	"storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Add(ctx context.Context, ownerID, productID string, quantity int) error {
	// The (account_id, product_id) primary key enforces one entry per
	// product; repeats fold into the existing row.
	const q = `
INSERT INTO cart_items (account_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (account_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, ownerID, productID, quantity)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, ownerID, productID string) error {
	// A malformed product id cannot match a row; removing it is a no-op
	// rather than a uuid cast error.
	if _, err := uuid.Parse(productID); err != nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE account_id = $1 AND product_id = $2
`, ownerID, productID)
	return err
}

func (r *postgresRepo) Entries(ctx context.Context, ownerID string) ([]domain.CartEntry, error) {
	const q = `
SELECT product_id::text, quantity
FROM cart_items
WHERE account_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CartEntry
	for rows.Next() {
		var e domain.CartEntry
		if err := rows.Scan(&e.ProductID, &e.Quantity); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postgresRepo) Clear(ctx context.Context, ownerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE account_id = $1`, ownerID)
	return err
}
