// Package handlers provides HTTP handler implementations for the public API.
//
// This file declares the service contracts the handlers depend on and the
// Handlers aggregate that the router wires up. Handlers are transport-thin:
// they validate input, call application services, and translate results
// (including service sentinel errors) into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/http/middleware"
	"github.com/ogwplus/go-store-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService issues bearer tokens. Implementations must be safe for
// concurrent use and honor the provided context.
type AuthService interface {
	// IssueToken returns a signed token for userID or services.ErrUserNotFound.
	IssueToken(ctx context.Context, userID int64) (*services.Token, error)
}

// UserService defines profile operations consumed by HTTP handlers.
type UserService interface {
	// Create inserts a new user; duplicates yield services.ErrUserExists.
	Create(ctx context.Context, userID int64, firstName, lastName, username string) (*domain.User, error)
	// Get returns the profile for userID.
	Get(ctx context.Context, userID int64) (*domain.User, error)
	// Update applies a partial update; nil fields stay untouched.
	Update(ctx context.Context, userID int64, upd services.UserUpdate) (*domain.User, error)
}

// CatalogService defines read-only catalog queries.
type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uint) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListNews(ctx context.Context, limit int) ([]domain.News, error)
}

// BasketService defines per-user basket operations.
type BasketService interface {
	Get(ctx context.Context, userID int64) ([]services.BasketEntry, error)
	Add(ctx context.Context, userID int64, productID uint, quantity int) (*services.BasketEntry, error)
	Remove(ctx context.Context, userID int64, itemID uint) error
}

// OrderService defines order placement and history operations.
type OrderService interface {
	Create(ctx context.Context, userID int64, address, deliveryMethod, paymentMethod string, items []domain.OrderItem) (*services.OrderReceipt, error)
	List(ctx context.Context, userID int64) ([]services.OrderView, error)
	Receipt(ctx context.Context, userID int64, orderID string) (*services.OrderReceipt, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for tokens, profiles, catalog, basket,
// and orders. It depends on abstract service interfaces to keep transport
// concerns separate from business logic. DB and IdempotencyTTL back the
// safe-retry bookkeeping in the order handler.
type Handlers struct {
	authSvc    AuthService
	userSvc    UserService
	catalogSvc CatalogService
	basketSvc  BasketService
	orderSvc   OrderService

	db      *gorm.DB
	idemTTL time.Duration
}

// New constructs a Handlers instance bound to the given services. idemTTL
// is the lifetime of idempotency records written by the order handler.
func New(authSvc AuthService, userSvc UserService, catalogSvc CatalogService, basketSvc BasketService, orderSvc OrderService, db *gorm.DB, idemTTL time.Duration) *Handlers {
	return &Handlers{
		authSvc:    authSvc,
		userSvc:    userSvc,
		catalogSvc: catalogSvc,
		basketSvc:  basketSvc,
		orderSvc:   orderSvc,
		db:         db,
		idemTTL:    idemTTL,
	}
}

// currentUser returns the authenticated user set by the auth middleware.
// When absent (a route mounted without RequireAuth by mistake), it aborts
// with 401 and returns false.
func currentUser(c *gin.Context) (*domain.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok || u == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return nil, false
	}
	return u, true
}
