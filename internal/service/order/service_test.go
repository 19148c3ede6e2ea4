package order

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubOrderRepo struct {
	order       *domain.Order
	checkoutErr error

	lastAccountID string
	lastAddress   string
	lastEntries   []domain.CartEntry
	statusID      string
	statusValue   domain.OrderStatus
}

func (s *stubOrderRepo) Checkout(_ context.Context, accountID, address, _ string, entries []domain.CartEntry) (*domain.Order, error) {
	s.lastAccountID = accountID
	s.lastAddress = address
	s.lastEntries = entries
	return s.order, s.checkoutErr
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, nil
}

func (s *stubOrderRepo) ListByAccount(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	s.statusID = id
	s.statusValue = status
	return nil
}

type stubCart struct {
	entries []domain.CartEntry
	cleared bool
}

func (s *stubCart) Entries(_ context.Context, _ string) ([]domain.CartEntry, error) {
	return s.entries, nil
}

func (s *stubCart) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

type recordingPublisher struct {
	published []domain.Order
	err       error
}

func (p *recordingPublisher) OrderPlaced(_ context.Context, order domain.Order) error {
	p.published = append(p.published, order)
	return p.err
}

func TestCheckout_EmptyCart(t *testing.T) {
	cart := &stubCart{}
	svc := New(&stubOrderRepo{}, cart, nil, nil)

	_, err := svc.Checkout(context.Background(), "acct", "1 Main St", "555-0100")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if cart.cleared {
		t.Fatalf("cart must not be cleared on failure")
	}
}

func TestCheckout_ValidationErrors(t *testing.T) {
	svc := New(&stubOrderRepo{}, &stubCart{}, nil, nil)

	var validation *domain.ValidationError
	if _, err := svc.Checkout(context.Background(), "acct", "  ", "555-0100"); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for address, got %v", err)
	}
	if _, err := svc.Checkout(context.Background(), "acct", "1 Main St", ""); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for phone, got %v", err)
	}
}

func TestCheckout_SuccessClearsCartAndPublishes(t *testing.T) {
	expected := &domain.Order{
		ID:        "o1",
		AccountID: "acct",
		Status:    domain.StatusPending,
		Items:     []domain.OrderItem{{ProductID: "p1", Quantity: 1, PriceAtPurchaseCents: 2000}},
	}
	repo := &stubOrderRepo{order: expected}
	cart := &stubCart{entries: []domain.CartEntry{{ProductID: "p1", Quantity: 1}}}
	pub := &recordingPublisher{}
	svc := New(repo, cart, pub, nil)

	got, err := svc.Checkout(context.Background(), "acct", "1 Main St", "555-0100")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got.ID != "o1" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !cart.cleared {
		t.Fatalf("expected cart cleared after success")
	}
	if len(repo.lastEntries) != 1 || repo.lastEntries[0].ProductID != "p1" {
		t.Fatalf("unexpected entries passed to repo: %+v", repo.lastEntries)
	}
	if len(pub.published) != 1 || pub.published[0].ID != "o1" {
		t.Fatalf("expected order event published, got %+v", pub.published)
	}
}

func TestCheckout_FailureLeavesCart(t *testing.T) {
	repo := &stubOrderRepo{checkoutErr: &domain.InsufficientStockError{ProductID: "p1", ProductName: "Laptop"}}
	cart := &stubCart{entries: []domain.CartEntry{{ProductID: "p1", Quantity: 3}}}
	pub := &recordingPublisher{}
	svc := New(repo, cart, pub, nil)

	_, err := svc.Checkout(context.Background(), "acct", "1 Main St", "555-0100")
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if cart.cleared {
		t.Fatalf("cart must survive a failed checkout so it can be retried")
	}
	if len(pub.published) != 0 {
		t.Fatalf("no event may be published on failure")
	}
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "o1", AccountID: "acct"}}
	cart := &stubCart{entries: []domain.CartEntry{{ProductID: "p1", Quantity: 1}}}
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := New(repo, cart, pub, nil)

	if _, err := svc.Checkout(context.Background(), "acct", "1 Main St", "555-0100"); err != nil {
		t.Fatalf("checkout must succeed despite publish failure, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := New(repo, &stubCart{}, nil, nil)

	if err := svc.SetStatus(context.Background(), "o1", "Shipped"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if repo.statusID != "o1" || repo.statusValue != domain.StatusShipped {
		t.Fatalf("unexpected status update: %s %s", repo.statusID, repo.statusValue)
	}

	var validation *domain.ValidationError
	if err := svc.SetStatus(context.Background(), "o1", "Teleported"); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}
