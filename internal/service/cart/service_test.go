package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubCartRepo struct {
	entries    []domain.CartEntry
	entriesErr error
	addErr     error

	lastAddOwner   string
	lastAddProduct string
	lastAddQty     int
	removedProduct string
	cleared        bool
}

func (s *stubCartRepo) Add(_ context.Context, ownerID, productID string, quantity int) error {
	s.lastAddOwner = ownerID
	s.lastAddProduct = productID
	s.lastAddQty = quantity
	return s.addErr
}

func (s *stubCartRepo) Remove(_ context.Context, _, productID string) error {
	s.removedProduct = productID
	return nil
}

func (s *stubCartRepo) Entries(_ context.Context, _ string) ([]domain.CartEntry, error) {
	return s.entries, s.entriesErr
}

func (s *stubCartRepo) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func TestAdd_OutOfStock(t *testing.T) {
	repo := &stubCartRepo{}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Mug", PriceCents: 1299, Stock: 0},
	}}
	svc := New(repo, products)

	err := svc.Add(context.Background(), "acct", "p1", 1)
	if !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if repo.lastAddProduct != "" {
		t.Fatalf("cart must not be touched on out-of-stock add")
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{products: map[string]*domain.Product{}})
	err := svc.Add(context.Background(), "acct", "missing", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdd_DefaultsQuantityToOne(t *testing.T) {
	repo := &stubCartRepo{}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Mug", PriceCents: 1299, Stock: 5},
	}}
	svc := New(repo, products)

	if err := svc.Add(context.Background(), "acct", "p1", 0); err != nil {
		t.Fatalf("add: %v", err)
	}
	if repo.lastAddQty != 1 {
		t.Fatalf("expected quantity 1, got %d", repo.lastAddQty)
	}
	if repo.lastAddOwner != "acct" || repo.lastAddProduct != "p1" {
		t.Fatalf("unexpected add call: %+v", repo)
	}
}

func TestView_SkipsStaleEntriesAndTotals(t *testing.T) {
	repo := &stubCartRepo{entries: []domain.CartEntry{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "gone", Quantity: 1},
		{ProductID: "p2", Quantity: 1},
	}}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Mug", PriceCents: 1299, Stock: 5},
		"p2": {ID: "p2", Name: "Laptop", PriceCents: 55000, Stock: 1},
	}}
	svc := New(repo, products)

	cart, err := svc.View(context.Background(), "acct")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected stale entry skipped, got %d items", len(cart.Items))
	}
	if cart.Items[0].LineTotalCents != 2598 {
		t.Fatalf("expected line total 2598, got %d", cart.Items[0].LineTotalCents)
	}
	if cart.TotalCents != 2598+55000 {
		t.Fatalf("expected total %d, got %d", 2598+55000, cart.TotalCents)
	}
}

func TestView_EmptyCart(t *testing.T) {
	svc := New(&stubCartRepo{}, &stubProductRepo{products: map[string]*domain.Product{}})
	cart, err := svc.View(context.Background(), "acct")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(cart.Items) != 0 || cart.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestRemove_DelegatesToRepo(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, &stubProductRepo{})
	if err := svc.Remove(context.Background(), "acct", "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if repo.removedProduct != "p1" {
		t.Fatalf("expected remove of p1, got %q", repo.removedProduct)
	}
}
