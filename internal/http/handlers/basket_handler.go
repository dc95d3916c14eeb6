// Basket endpoints (bearer-token auth).
//
//   - GET    /api/basket            (current user's basket snapshots)
//   - POST   /api/basket            (add item {productId, quantity})
//   - DELETE /api/basket/{itemId}   (remove an owned row)
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/services"
)

// AddToBasketRequest is the JSON payload for POST /api/basket.
type AddToBasketRequest struct {
	// ProductID selects the catalog entry to snapshot.
	ProductID uint `json:"productId" binding:"required" example:"7"`
	// Quantity defaults to 1 when omitted.
	Quantity int `json:"quantity" example:"2"`
}

// AddToBasketResponse confirms the captured snapshot.
type AddToBasketResponse struct {
	Success bool                 `json:"success"`
	Product services.BasketEntry `json:"product"`
}

// GetBasket godoc
// @ID          getBasket
// @Summary     Current user's basket
// @Description Returns the product snapshots captured at add time; later catalog changes do not affect them.
// @Tags        Basket
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   services.BasketEntry
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /basket [get]
func (h *Handlers) GetBasket(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		return
	}

	entries, err := h.basketSvc.Get(c.Request.Context(), u.UserID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, entries)
}

// AddToBasket godoc
// @ID          addToBasket
// @Summary     Add a product to the basket
// @Description Captures the product's current name, price, and image with the requested quantity as a new basket row.
// @Tags        Basket
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.AddToBasketRequest  true  "Add payload"
//
// @Success     200  {object}  handlers.AddToBasketResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Product not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /basket [post]
func (h *Handlers) AddToBasket(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		return
	}

	var req AddToBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	entry, err := h.basketSvc.Add(c.Request.Context(), u.UserID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
		case errors.Is(err, services.ErrInvalidQuantity):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "quantity must be positive")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		}
		return
	}
	ok(c, http.StatusOK, AddToBasketResponse{Success: true, Product: *entry})
}

// RemoveFromBasket godoc
// @ID          removeFromBasket
// @Summary     Remove a basket row
// @Description Deletes the row only when it belongs to the current user; foreign or unknown ids yield 404.
// @Tags        Basket
// @Produce     json
// @Security    BearerAuth
//
// @Param       itemId  path  int  true  "Basket row id"
//
// @Success     200  {object}  map[string]bool
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Item not found in basket"
// @Router      /basket/{itemId} [delete]
func (h *Handlers) RemoveFromBasket(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item id must be a positive integer")
		return
	}

	if err := h.basketSvc.Remove(c.Request.Context(), u.UserID, uint(itemID)); err != nil {
		if errors.Is(err, services.ErrBasketItemNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "item not found in basket")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, gin.H{"success": true})
}
