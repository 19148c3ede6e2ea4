package httpserver

import (
	"context"
	"errors"
	"log"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	catalogsvc "storefront/internal/service/catalog"
	"storefront/internal/upload"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service interfaces are declared on the consumer side so handler tests
// can stub them.

type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query, priceBand string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in catalogsvc.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id, ref string) (*domain.Product, error)
}

type CartService interface {
	Add(ctx context.Context, ownerID, productID string, quantity int) error
	Remove(ctx context.Context, ownerID, productID string) error
	View(ctx context.Context, ownerID string) (*domain.Cart, error)
	Clear(ctx context.Context, ownerID string) error
}

type AccountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Account, string, error)
	Logout(ctx context.Context, token string) error
	LookupSession(ctx context.Context, token string) (*domain.Account, error)
	SessionTTLSeconds() int
}

type OrderService interface {
	Checkout(ctx context.Context, accountID, address, phone string) (*domain.Order, error)
	ListMine(ctx context.Context, accountID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error
}

// Deps bundles the services the router needs.
type Deps struct {
	CatalogSvc CatalogService
	CartSvc    CartService
	AccountSvc AccountService
	OrderSvc   OrderService
	Uploads    *upload.Store

	// ClearCartOnLogout mirrors the ephemeral cart variant, where the
	// cart does not outlive the session.
	ClearCartOnLogout bool
}

func (d Deps) validate() error {
	if d.CatalogSvc == nil || d.CartSvc == nil || d.AccountSvc == nil || d.OrderSvc == nil {
		return errors.New("httpserver: missing service dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	// Public catalogue.
	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.GET("/search", searchProductsHandler(deps.CatalogSvc))
	if deps.Uploads != nil {
		router.Static("/images", deps.Uploads.Dir())
	}

	// Auth.
	router.POST("/signup", signupHandler(deps.AccountSvc))
	router.POST("/login", loginHandler(deps.AccountSvc))
	router.POST("/logout", authMiddleware(deps.AccountSvc), logoutHandler(deps))

	// Everything below requires a session.
	authed := router.Group("/", authMiddleware(deps.AccountSvc))
	authed.GET("/cart", viewCartHandler(deps.CartSvc))
	authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	authed.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
	authed.POST("/checkout", checkoutHandler(deps.OrderSvc))
	authed.GET("/my/orders", myOrdersHandler(deps.OrderSvc))

	// Admin surface.
	admin := router.Group("/admin", authMiddleware(deps.AccountSvc), requireRole(domain.RoleAdmin))
	admin.GET("/products", listProductsHandler(deps.CatalogSvc))
	admin.POST("/products", createProductHandler(deps.CatalogSvc))
	admin.PUT("/products/:id", updateProductHandler(deps.CatalogSvc))
	admin.DELETE("/products/:id", deleteProductHandler(deps.CatalogSvc))
	admin.POST("/products/:id/image", uploadProductImageHandler(deps.CatalogSvc, deps.Uploads))
	admin.GET("/orders", adminOrdersHandler(deps.OrderSvc))
	admin.PUT("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc))

	return router, nil
}
