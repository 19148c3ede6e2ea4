package events

import (
	"context"

	"storefront/internal/domain"
)

// Publisher emits order lifecycle events for downstream consumers
// (fulfilment, notifications). Publishing is best-effort: checkout never
// fails because the broker is down.
type Publisher interface {
	OrderPlaced(ctx context.Context, order domain.Order) error
}

// Nop discards every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) OrderPlaced(context.Context, domain.Order) error { return nil }
