// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Order model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

// CreateOrder inserts a new order row with a random UUID identifier and
// status "created". The items payload must already be serialized; the total
// is whatever the service layer computed.
func CreateOrder(ctx context.Context, db *gorm.DB, userID int64, items string, total float64, address, deliveryMethod, paymentMethod string) (*domain.Order, error) {
	o := &domain.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		Items:          items,
		TotalAmount:    total,
		Address:        address,
		DeliveryMethod: deliveryMethod,
		PaymentMethod:  paymentMethod,
		Status:         domain.OrderStatusCreated,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns all orders for userID ordered by creation time
// descending (most recent first).
func ListOrders(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetOrder fetches a single order by its opaque id, enforcing ownership.
func GetOrder(ctx context.Context, db *gorm.DB, userID int64, orderID string) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}
