package order

import (
	"context"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/events"
)

// Service orchestrates checkout and order reads. The transactional work
// lives in the order repository; this layer validates input, consumes the
// cart, and clears it only after the order is durably committed.
type Service struct {
	repo      orderRepo
	cart      cartConsumer
	publisher events.Publisher
	logger    *log.Logger
}

type orderRepo interface {
	Checkout(ctx context.Context, accountID, address, phone string, entries []domain.CartEntry) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type cartConsumer interface {
	Entries(ctx context.Context, ownerID string) ([]domain.CartEntry, error)
	Clear(ctx context.Context, ownerID string) error
}

func New(repo orderRepo, cart cartConsumer, publisher events.Publisher, logger *log.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, cart: cart, publisher: publisher, logger: logger}
}

// Checkout turns the account's cart into a persisted order. On any
// failure the cart is left untouched so the request can be retried; on
// success the cart is cleared and an order-placed event is published.
func (s *Service) Checkout(ctx context.Context, accountID, address, phone string) (*domain.Order, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, domain.Invalid("address required")
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.Invalid("phone required")
	}

	entries, err := s.cart.Entries(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCart
	}

	ord, err := s.repo.Checkout(ctx, accountID, address, phone, entries)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, accountID); err != nil {
		// The order is committed; a leftover cart is an annoyance, not
		// a correctness problem.
		s.logger.Printf("order service: clear cart account=%s order=%s error=%v", accountID, ord.ID, err)
	}
	if err := s.publisher.OrderPlaced(ctx, *ord); err != nil {
		s.logger.Printf("order service: publish order=%s error=%v", ord.ID, err)
	}
	return ord, nil
}

// ListMine returns the account's orders, newest first.
func (s *Service) ListMine(ctx context.Context, accountID string) ([]domain.Order, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus updates an order's status to any admin-chosen value.
// Transitions are deliberately unconstrained.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	parsed, ok := domain.ParseOrderStatus(status)
	if !ok {
		return domain.Invalid("unknown status %q", status)
	}
	return s.repo.UpdateStatus(ctx, id, parsed)
}
