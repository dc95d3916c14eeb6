// Order endpoints (bearer-token auth).
//
//   - POST /api/orders  (place an order; supports Idempotency-Key replays)
//   - GET  /api/orders  (order history, newest first)
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/http/middleware"
	"github.com/ogwplus/go-store-backend/internal/repo"
	"github.com/ogwplus/go-store-backend/internal/services"
)

// CreateOrderRequest is the JSON payload for POST /api/orders.
type CreateOrderRequest struct {
	Address        string             `json:"address" binding:"required" example:"221B Baker Street"`
	DeliveryMethod string             `json:"deliveryMethod" binding:"required" example:"courier"`
	PaymentMethod  string             `json:"paymentMethod" binding:"required" example:"card"`
	Items          []domain.OrderItem `json:"items" binding:"required"`
}

// CreateOrder godoc
// @ID          createOrder
// @Summary     Place an order
// @Description Inserts the order, clears the basket, and saves the supplied address, delivery, and payment method on the profile in one transaction. The total is computed server side from the item list. Send an Idempotency-Key header to make retries safe; a replayed key returns the original receipt with 200.
// @Tags        Orders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       Idempotency-Key  header  string                       false  "Client-chosen retry key"
// @Param       body             body    handlers.CreateOrderRequest  true   "Order payload"
//
// @Success     201  {object}  services.OrderReceipt
// @Success     200  {object}  services.OrderReceipt  "Replay of a previously accepted key"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /orders [post]
func (h *Handlers) CreateOrder(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		return
	}

	// Replay path: the idempotency middleware already matched the key
	// against a stored record for this user.
	if key, okKey := middleware.GetIdempotencyKey(c); okKey && middleware.IsReplay(c) {
		rec, err := repo.GetIdempotency(c.Request.Context(), h.db, u.UserID, key, time.Now().UTC())
		if err == nil && rec.OrderID != "" {
			receipt, rerr := h.orderSvc.Receipt(c.Request.Context(), u.UserID, rec.OrderID)
			if rerr == nil {
				ok(c, rec.Status, receipt)
				return
			}
		}
		// Record vanished between middleware and handler; fall through
		// and process the request fresh.
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item quantity must be positive")
			return
		}
	}

	receipt, err := h.orderSvc.Create(c.Request.Context(), u.UserID, req.Address, req.DeliveryMethod, req.PaymentMethod, req.Items)
	if err != nil {
		if errors.Is(err, services.ErrEmptyOrder) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "order must contain at least one item")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}

	if key, okKey := middleware.GetIdempotencyKey(c); okKey {
		// Best effort: a failed write only costs the retry safety of this
		// particular key, the order itself is already committed.
		if _, ierr := repo.CreateIdempotency(c.Request.Context(), h.db, u.UserID, key, receipt.OrderID, http.StatusOK, h.idemTTL); ierr != nil && !errors.Is(ierr, repo.ErrDuplicate) {
			middleware.LoggerFrom(c).Warn().Err(ierr).Str("order_id", receipt.OrderID).Msg("idempotency record write failed")
		}
	}

	middleware.CountOrderPlaced()
	ok(c, http.StatusCreated, receipt)
}

// ListOrders godoc
// @ID          listOrders
// @Summary     Current user's order history
// @Description Returns the user's orders newest first, each with its frozen item list and server-computed total.
// @Tags        Orders
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   services.OrderView
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /orders [get]
func (h *Handlers) ListOrders(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		return
	}

	views, err := h.orderSvc.List(c.Request.Context(), u.UserID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, views)
}
