package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/http/middleware"
	"github.com/ogwplus/go-store-backend/internal/repo"
	"github.com/ogwplus/go-store-backend/internal/services"
)

// newTestAPI builds an in-memory database and a Gin engine with the same
// route layout and auth chain the production router mounts.
func newTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Product{}, &domain.BasketItem{},
		&domain.Order{}, &domain.News{}, &domain.Idempotency{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	authSvc := services.NewAuthService(db, []byte("test-secret"), time.Hour)
	h := New(
		authSvc,
		services.NewUserService(db),
		services.NewCatalogService(db),
		services.NewBasketService(db),
		services.NewOrderService(db),
		db,
		time.Hour,
	)

	idemLookup := func(ctx context.Context, userID int64, key string, now time.Time) (bool, error) {
		rec, err := repo.GetIdempotency(ctx, db, userID, key, now)
		if err != nil || rec == nil {
			return false, nil
		}
		return true, nil
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	public := r.Group("/api")
	{
		public.POST("/token", h.IssueToken)
		public.POST("/users", h.CreateUser)
		public.GET("/products", h.ListProducts)
		public.GET("/products/:id", h.GetProduct)
		public.GET("/categories", h.ListCategories)
		public.GET("/news", h.ListNews)
	}

	private := r.Group("/api")
	private.Use(middleware.RequireAuth(authSvc))
	private.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, idemLookup))
	{
		private.GET("/users/me", h.GetCurrentUser)
		private.PUT("/users/me", h.UpdateCurrentUser)
		private.GET("/basket", h.GetBasket)
		private.POST("/basket", h.AddToBasket)
		private.DELETE("/basket/:itemId", h.RemoveFromBasket)
		private.POST("/orders", h.CreateOrder)
		private.GET("/orders", h.ListOrders)
	}

	return r, db
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any, extraHeaders ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, hdrs := range extraHeaders {
		for k, v := range hdrs {
			req.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerAndLogin seeds a user and returns a valid bearer token for it.
func registerAndLogin(t *testing.T, r *gin.Engine, userID int64) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/users", "", gin.H{
		"user_id":    userID,
		"first_name": "Test",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create user: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/token", "", gin.H{"user_id": userID})
	if w.Code != http.StatusOK {
		t.Fatalf("issue token: status %d body %s", w.Code, w.Body.String())
	}
	var tok services.Token
	if err := json.Unmarshal(w.Body.Bytes(), &tok); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if tok.AccessToken == "" {
		t.Fatalf("empty access token: %s", w.Body.String())
	}
	return tok.AccessToken
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return e
}
