// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-only repository functions for the
// Product and News models. Catalog rows are managed by an external process,
// so no write helpers exist here.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

// ListProducts returns all products, optionally restricted to an exact
// category match. The filter is a literal equality comparison; no partial
// or case-insensitive matching is applied.
func ListProducts(ctx context.Context, db *gorm.DB, category string) ([]domain.Product, error) {
	q := db.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.Product
	err := q.Find(&out).Error
	return out, err
}

// GetProduct fetches a single product by id, or ErrNotFound if absent.
func GetProduct(ctx context.Context, db *gorm.DB, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories returns the distinct category values across all products.
func ListCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Distinct("category").
		Pluck("category", &out).Error
	return out, err
}

// ListNews returns news entries ordered by id descending (newest first).
// A limit <= 0 returns everything.
func ListNews(ctx context.Context, db *gorm.DB, limit int) ([]domain.News, error) {
	q := db.WithContext(ctx).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.News
	err := q.Find(&out).Error
	return out, err
}
