// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the BasketItem
// model.
//
// Basket rows carry the serialized product snapshot captured at add time;
// the repository never re-joins against the live products table.
//
// Error semantics:
//   - DeleteBasketItem returns ErrNotFound when no row with that id belongs
//     to the given user. Ownership is part of the WHERE clause so a user can
//     never delete another user's row by guessing its id.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

// CreateBasketItem inserts a basket row holding the serialized snapshot.
func CreateBasketItem(ctx context.Context, db *gorm.DB, userID int64, productData string) (*domain.BasketItem, error) {
	item := &domain.BasketItem{
		UserID:      userID,
		ProductData: productData,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ListBasketItems returns all basket rows for userID in storage order.
func ListBasketItems(ctx context.Context, db *gorm.DB, userID int64) ([]domain.BasketItem, error) {
	var out []domain.BasketItem
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&out).Error
	return out, err
}

// DeleteBasketItem removes the row with itemID if it belongs to userID.
// Returns ErrNotFound when no such owned row exists.
func DeleteBasketItem(ctx context.Context, db *gorm.DB, userID int64, itemID uint) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&domain.BasketItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearBasket deletes every basket row for userID. Deleting an already
// empty basket is not an error.
func ClearBasket(ctx context.Context, db *gorm.DB, userID int64) error {
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.BasketItem{}).Error
}
