package catalog

import (
	"context"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// Service exposes catalogue reads to shoppers and product CRUD to admins.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, query, priceBand string) ([]domain.Product, error) {
	band := domain.PriceBand(strings.TrimSpace(priceBand))
	switch band {
	case domain.PriceBandAny, domain.PriceBandLow, domain.PriceBandMedium, domain.PriceBandHigh:
	default:
		return nil, domain.Invalid("unknown price band %q", priceBand)
	}
	return s.repo.Search(ctx, productrepo.SearchFilter{
		Query:     strings.TrimSpace(query),
		PriceBand: band,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ProductInput carries admin-submitted product fields.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name required")
	}
	if in.PriceCents < 0 {
		return domain.Invalid("price must not be negative")
	}
	if in.Stock < 0 {
		return domain.Invalid("stock must not be negative")
	}
	return nil
}

func (in ProductInput) toProduct() domain.Product {
	image := strings.TrimSpace(in.Image)
	if image == "" {
		image = "placeholder.jpg"
	}
	return domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		Image:       image,
	}
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in.toProduct())
}

// Update replaces all editable fields of a product. Price edits do not
// touch price snapshots on existing orders.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toProduct()
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SetImage stores an uploaded image reference on a product. The write is
// targeted at the image column only; a read-modify-write of the full row
// could resurrect a stock value a concurrent checkout already decremented.
func (s *Service) SetImage(ctx context.Context, id, ref string) (*domain.Product, error) {
	return s.repo.SetImage(ctx, id, ref)
}
