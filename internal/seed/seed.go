package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int
	Image       string
}

// Apply inserts the demo admin account and sample products for manual
// testing. It is idempotent: existing rows are left alone.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "Admin", "admin@demo.com", "admin123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Laptop",
			Description: "Powerful laptop for work and gaming",
			PriceCents:  55000,
			Stock:       10,
			Image:       "laptop.jpg",
		},
		{
			Name:        "Headphones",
			Description: "Noise-cancelling wireless headphones",
			PriceCents:  2000,
			Stock:       50,
			Image:       "headphones.jpg",
		},
		{
			Name:        "Smartphone",
			Description: "Latest Android smartphone",
			PriceCents:  30000,
			Stock:       25,
			Image:       "smartphone.jpg",
		},
	}

	var productCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&productCount); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if productCount > 0 {
		return nil
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, name, email, password string) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE role = 'admin'`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
INSERT INTO accounts (name, email, password_hash, role)
VALUES ($1, $2, $3, 'admin')
`, name, email, string(hashed))
	return err
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	_, err := pool.Exec(ctx, `
INSERT INTO products (name, description, price_cents, stock, image)
VALUES ($1, $2, $3, $4, $5)
`, p.Name, p.Description, p.PriceCents, p.Stock, p.Image)
	return err
}
