package session

import (
	"context"
	"time"
)

// Session binds an opaque bearer token to an account for a limited time.
type Session struct {
	Token     string
	AccountID string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
