package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores raw cart entries keyed by an owner id (the account id).
// Two implementations exist: Postgres rows that survive logins, and an
// ephemeral Redis hash that expires with the session.
type Repository interface {
	// Add inserts an entry or increments the quantity of an existing one,
	// so a cart holds at most one entry per product.
	Add(ctx context.Context, ownerID, productID string, quantity int) error
	// Remove deletes an entry. Removing an absent entry is a no-op; entries
	// of other owners are unreachable by construction.
	Remove(ctx context.Context, ownerID, productID string) error
	Entries(ctx context.Context, ownerID string) ([]domain.CartEntry, error)
	Clear(ctx context.Context, ownerID string) error
}
