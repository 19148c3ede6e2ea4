package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Checkout converts cart entries into a persisted order inside one
	// transaction, decrementing stock as it goes. It either commits the
	// order, its items, and every stock decrement together, or leaves the
	// database untouched.
	Checkout(ctx context.Context, accountID, address, phone string, entries []domain.CartEntry) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
