// Package services – CatalogService
//
// Read-only queries over products, categories, and news. The catalog is
// maintained by an external process; this service only composes queries and
// maps repository errors to service-level sentinels.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/repo"
)

// CatalogService serves product, category, and news reads.
type CatalogService struct {
	DB *gorm.DB
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListProducts returns all products, optionally restricted to an exact
// category match. No pagination; storage order.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	return repo.ListProducts(ctx, s.DB, category)
}

// GetProduct returns a single product or ErrProductNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := repo.GetProduct(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListCategories returns the distinct category values across all products.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return repo.ListCategories(ctx, s.DB)
}

// ListNews returns news items newest-first. limit <= 0 means all.
func (s *CatalogService) ListNews(ctx context.Context, limit int) ([]domain.News, error) {
	return repo.ListNews(ctx, s.DB, limit)
}
