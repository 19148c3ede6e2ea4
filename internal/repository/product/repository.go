package product

import (
	"context"

	"storefront/internal/domain"
)

// SearchFilter narrows catalogue listings. Zero value matches everything.
type SearchFilter struct {
	Query     string
	PriceBand domain.PriceBand
}

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	SetImage(ctx context.Context, id, image string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
