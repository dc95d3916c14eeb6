// Package services – OrderService
//
// This file implements order placement and listing. Order creation is the
// one multi-effect flow in the system: inserting the order row, clearing
// the user's basket, and overwriting the user's delivery profile all happen
// inside a single database transaction, so a failure partway through leaves
// no partial state behind.
//
// The item list is accepted from the caller as-is (the web app sources it
// from the basket, but the contract does not force that); the total is
// always recomputed server-side from the supplied prices and quantities.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the user id and order id where available.
package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OrderReceipt is the confirmation returned after a successful placement.
type OrderReceipt struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"`
}

// OrderView is one entry of a user's order history, with the item list
// already deserialized.
type OrderView struct {
	OrderID     string             `json:"order_id"`
	TotalAmount float64            `json:"total_amount"`
	Status      string             `json:"status"`
	CreatedAt   string             `json:"created_at"`
	Items       []domain.OrderItem `json:"items"`
}

// OrderService coordinates the transactional conversion of an item list
// into a persisted order.
type OrderService struct {
	DB *gorm.DB
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// Create places an order for userID.
//
// Validation: an empty item list yields ErrEmptyOrder. The total is
// Σ price×quantity over items; any client-supplied total is ignored.
//
// Atomicity: the order insert, the basket clear, and the user-profile
// overwrite run in one transaction. Either the order exists and both side
// effects happened, or none of the three took place.
func (s *OrderService) Create(ctx context.Context, userID int64, address, deliveryMethod, paymentMethod string, items []domain.OrderItem) (*OrderReceipt, error) {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.Int("order.items", len(items)),
		),
	)
	defer span.End()

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := repo.CreateOrder(ctx, tx, userID, string(payload), total, address, deliveryMethod, paymentMethod)
		if err != nil {
			return err
		}
		order = o

		if err := repo.ClearBasket(ctx, tx, userID); err != nil {
			return err
		}

		// The profile mirrors the most recent order.
		return tx.Model(&domain.User{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"address":         address,
				"delivery_method": deliveryMethod,
				"payment_method":  paymentMethod,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", order.ID))
	return &OrderReceipt{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt.Format(time.RFC3339),
	}, nil
}

// List returns the user's orders newest-first with deserialized item lists.
func (s *OrderService) List(ctx context.Context, userID int64) ([]OrderView, error) {
	tr := otel.Tracer("services/OrderService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.Int64("user.id", userID)),
	)
	defer span.End()

	rows, err := repo.ListOrders(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderView, 0, len(rows))
	for i := range rows {
		items, _ := rows[i].ItemList()
		out = append(out, OrderView{
			OrderID:     rows[i].ID,
			TotalAmount: rows[i].TotalAmount,
			Status:      rows[i].Status,
			CreatedAt:   rows[i].CreatedAt.Format(time.RFC3339),
			Items:       items,
		})
	}
	return out, nil
}

// Receipt rebuilds the confirmation payload for an existing order. Used to
// serve idempotent replays of POST /api/orders.
func (s *OrderService) Receipt(ctx context.Context, userID int64, orderID string) (*OrderReceipt, error) {
	o, err := repo.GetOrder(ctx, s.DB, userID, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderReceipt{
		OrderID:     o.ID,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}, nil
}
