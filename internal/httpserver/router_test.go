package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	catalogsvc "storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCatalogSvc struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubCatalogSvc) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) Search(_ context.Context, _, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Create(_ context.Context, _ catalogsvc.ProductInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Update(_ context.Context, _ string, _ catalogsvc.ProductInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Delete(_ context.Context, _ string) error {
	return s.err
}

func (s *stubCatalogSvc) SetImage(_ context.Context, _, _ string) (*domain.Product, error) {
	return s.product, s.err
}

type stubCartSvc struct {
	cart    *domain.Cart
	addErr  error
	viewErr error
	cleared bool
}

func (s *stubCartSvc) Add(_ context.Context, _, _ string, _ int) error {
	return s.addErr
}

func (s *stubCartSvc) Remove(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubCartSvc) View(_ context.Context, _ string) (*domain.Cart, error) {
	if s.viewErr != nil {
		return nil, s.viewErr
	}
	if s.cart == nil {
		return &domain.Cart{Items: []domain.CartItem{}}, nil
	}
	return s.cart, nil
}

func (s *stubCartSvc) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

type stubAccountSvc struct {
	account   *domain.Account
	token     string
	signupErr error
	loginErr  error
	lookupErr error
}

func (s *stubAccountSvc) Signup(_ context.Context, _ accountsvc.SignupInput) (*domain.Account, error) {
	return s.account, s.signupErr
}

func (s *stubAccountSvc) Login(_ context.Context, _, _ string) (*domain.Account, string, error) {
	return s.account, s.token, s.loginErr
}

func (s *stubAccountSvc) Logout(_ context.Context, _ string) error {
	return nil
}

func (s *stubAccountSvc) LookupSession(_ context.Context, _ string) (*domain.Account, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.account, nil
}

func (s *stubAccountSvc) SessionTTLSeconds() int {
	return 3600
}

type stubOrderSvc struct {
	order       *domain.Order
	orders      []domain.Order
	checkoutErr error
	statusErr   error
}

func (s *stubOrderSvc) Checkout(_ context.Context, _, _, _ string) (*domain.Order, error) {
	return s.order, s.checkoutErr
}

func (s *stubOrderSvc) ListMine(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderSvc) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderSvc) Get(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, nil
}

func (s *stubOrderSvc) SetStatus(_ context.Context, _, _ string) error {
	return s.statusErr
}

func testDeps() Deps {
	return Deps{
		CatalogSvc: &stubCatalogSvc{},
		CartSvc:    &stubCartSvc{},
		AccountSvc: &stubAccountSvc{account: userAccount()},
		OrderSvc:   &stubOrderSvc{},
	}
}

func userAccount() *domain.Account {
	return &domain.Account{ID: "acct-1", Name: "Shopper", Email: "a@example.com", Role: domain.RoleUser}
}

func adminAccount() *domain.Account {
	return &domain.Account{ID: "admin-1", Name: "Admin", Email: "admin@demo.com", Role: domain.RoleAdmin}
}

func serve(t *testing.T, deps Deps, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBuildRouter_MissingDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatalf("expected error for missing deps")
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := serve(t, testDeps(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz_NoDB(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := serve(t, testDeps(), req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without db, got %d", rec.Code)
	}
}
