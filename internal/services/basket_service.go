// Package services – BasketService
//
// This file implements the per-user basket: listing snapshots, adding a
// product (capturing its current name, price, and image), and removing an
// owned row. The snapshot taken at add time is authoritative for basket
// display; a later catalog price change does not rewrite existing rows.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/repo"
)

// BasketEntry pairs a basket row id with its deserialized snapshot. The id
// is what DELETE /api/basket/{itemId} consumes.
type BasketEntry struct {
	ItemID uint `json:"itemId"`
	domain.ProductSnapshot
}

// BasketService manages the per-user staging collection of product
// snapshots pending order placement.
type BasketService struct {
	DB *gorm.DB
}

// NewBasketService constructs a BasketService.
func NewBasketService(db *gorm.DB) *BasketService {
	return &BasketService{DB: db}
}

// Get returns the user's basket as deserialized snapshots. Rows whose
// payload fails to decode are returned with zero-valued snapshot fields
// rather than failing the whole listing.
func (s *BasketService) Get(ctx context.Context, userID int64) ([]BasketEntry, error) {
	rows, err := repo.ListBasketItems(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	out := make([]BasketEntry, 0, len(rows))
	for i := range rows {
		snap, _ := rows[i].Snapshot()
		out = append(out, BasketEntry{ItemID: rows[i].ID, ProductSnapshot: snap})
	}
	return out, nil
}

// Add captures the product's current name, price, and image plus the
// requested quantity, persists the snapshot as a new row, and returns the
// entry. The product must exist; quantity must be positive. There is no
// upper bound on quantity or basket size.
func (s *BasketService) Add(ctx context.Context, userID int64, productID uint, quantity int) (*BasketEntry, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := repo.GetProduct(ctx, s.DB, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	snap := domain.ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	row, err := repo.CreateBasketItem(ctx, s.DB, userID, string(payload))
	if err != nil {
		return nil, err
	}
	return &BasketEntry{ItemID: row.ID, ProductSnapshot: snap}, nil
}

// Remove deletes the basket row with itemID if it belongs to userID.
// A row owned by a different user is reported as ErrBasketItemNotFound,
// never as success.
func (s *BasketService) Remove(ctx context.Context, userID int64, itemID uint) error {
	if err := repo.DeleteBasketItem(ctx, s.DB, userID, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBasketItemNotFound
		}
		return err
	}
	return nil
}
