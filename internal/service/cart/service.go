package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// Service mediates cart mutations. Stock is checked optimistically at
// add-time only; checkout re-validates inside its transaction.
type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	Add(ctx context.Context, ownerID, productID string, quantity int) error
	Remove(ctx context.Context, ownerID, productID string) error
	Entries(ctx context.Context, ownerID string) ([]domain.CartEntry, error)
	Clear(ctx context.Context, ownerID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// Add puts quantity units of a product into the owner's cart. Adding a
// product already present increments its entry instead of duplicating it.
func (s *Service) Add(ctx context.Context, ownerID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock <= 0 {
		return domain.ErrOutOfStock
	}
	return s.repo.Add(ctx, ownerID, productID, quantity)
}

func (s *Service) Remove(ctx context.Context, ownerID, productID string) error {
	return s.repo.Remove(ctx, ownerID, productID)
}

// View joins cart entries with live product data. Entries whose product
// has been deleted are silently skipped.
func (s *Service) View(ctx context.Context, ownerID string) (*domain.Cart, error) {
	entries, err := s.repo.Entries(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cart := &domain.Cart{Items: []domain.CartItem{}}
	for _, entry := range entries {
		p, err := s.productRepo.GetByID(ctx, entry.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lineTotal := p.PriceCents * int64(entry.Quantity)
		cart.Items = append(cart.Items, domain.CartItem{
			Product:        *p,
			Quantity:       entry.Quantity,
			LineTotalCents: lineTotal,
		})
		cart.TotalCents += lineTotal
	}
	return cart, nil
}

// Entries exposes raw cart rows for checkout.
func (s *Service) Entries(ctx context.Context, ownerID string) ([]domain.CartEntry, error) {
	return s.repo.Entries(ctx, ownerID)
}

func (s *Service) Clear(ctx context.Context, ownerID string) error {
	return s.repo.Clear(ctx, ownerID)
}
