package catalog

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type stubRepo struct {
	products   []domain.Product
	lastFilter productrepo.SearchFilter
	created    *domain.Product
	updated    *domain.Product
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubRepo) Search(_ context.Context, f productrepo.SearchFilter) ([]domain.Product, error) {
	s.lastFilter = f
	return s.products, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = "p-new"
	s.created = &p
	return &p, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.updated = &p
	return &p, nil
}

func (s *stubRepo) SetImage(_ context.Context, id, image string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].Image = image
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func TestSearch_ValidatesPriceBand(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	var validation *domain.ValidationError
	if _, err := svc.Search(context.Background(), "", "expensive"); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for unknown band, got %v", err)
	}

	if _, err := svc.Search(context.Background(), "  laptop ", "low"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.lastFilter.Query != "laptop" || repo.lastFilter.PriceBand != domain.PriceBandLow {
		t.Fatalf("unexpected filter: %+v", repo.lastFilter)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := New(&stubRepo{})

	cases := []struct {
		name string
		in   ProductInput
	}{
		{"missing name", ProductInput{PriceCents: 100, Stock: 1}},
		{"negative price", ProductInput{Name: "Mug", PriceCents: -1}},
		{"negative stock", ProductInput{Name: "Mug", PriceCents: 100, Stock: -1}},
	}
	for _, tc := range cases {
		var validation *domain.ValidationError
		if _, err := svc.Create(context.Background(), tc.in); !errors.As(err, &validation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreate_DefaultsImage(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	p, err := svc.Create(context.Background(), ProductInput{Name: "Mug", PriceCents: 1299, Stock: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Image != "placeholder.jpg" {
		t.Fatalf("expected placeholder image, got %q", p.Image)
	}
}

func TestSetImage(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{
		{ID: "p1", Name: "Mug", PriceCents: 1299, Stock: 5, Image: "placeholder.jpg"},
	}}
	svc := New(repo)

	p, err := svc.SetImage(context.Background(), "p1", "abc123.jpg")
	if err != nil {
		t.Fatalf("set image: %v", err)
	}
	if p.Image != "abc123.jpg" {
		t.Fatalf("expected new image reference, got %q", p.Image)
	}
	if p.Name != "Mug" || p.Stock != 5 {
		t.Fatalf("other fields must be preserved, got %+v", p)
	}

	if _, err := svc.SetImage(context.Background(), "missing", "x.jpg"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetImage_NeverWritesFullRow(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{
		{ID: "p1", Name: "Mug", PriceCents: 1299, Stock: 5},
	}}
	svc := New(repo)

	if _, err := svc.SetImage(context.Background(), "p1", "abc123.jpg"); err != nil {
		t.Fatalf("set image: %v", err)
	}
	// A full-row write here would carry a stale stock value and undo
	// decrements committed by concurrent checkouts.
	if repo.updated != nil {
		t.Fatalf("image change must not go through Update, wrote %+v", repo.updated)
	}
}
