// User profile endpoints.
//
//   - POST /api/users      (create, unauthenticated first contact)
//   - GET  /api/users/me   (current profile)
//   - PUT  /api/users/me   (partial update)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/services"
)

// CreateUserRequest is the JSON payload for creating a user.
type CreateUserRequest struct {
	// UserID is the external numeric identifier (Telegram id).
	UserID int64 `json:"user_id" binding:"required" example:"42"`
	// FirstName is the display name; required.
	FirstName string `json:"first_name" binding:"required" example:"Ada"`
	// LastName is optional.
	LastName string `json:"last_name" example:"Lovelace"`
	// Username is the optional messenger handle.
	Username string `json:"username" example:"ada"`
}

// UpdateUserRequest mirrors services.UserUpdate: every field is optional
// and absent fields are left untouched, not reset.
type UpdateUserRequest struct {
	Address        *string `json:"address"`
	DeliveryMethod *string `json:"delivery_method"`
	PaymentMethod  *string `json:"payment_method"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a user
// @Description Registers a user on first contact. Duplicate ids are rejected with 409.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserRequest  true  "Create user payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "User already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.FirstName) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id and first_name are required")
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), req.UserID, strings.TrimSpace(req.FirstName), req.LastName, req.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			fail(c, http.StatusConflict, ErrCodeConflict, "user already exists")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusCreated, u)
}

// GetCurrentUser godoc
// @ID          getCurrentUser
// @Summary     Current user profile
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /users/me [get]
func (h *Handlers) GetCurrentUser(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateCurrentUser godoc
// @ID          updateCurrentUser
// @Summary     Partially update the current user
// @Description Applies only the fields present in the request body; absent fields keep their stored values.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateUserRequest  true  "Fields to update"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/me [put]
func (h *Handlers) UpdateCurrentUser(c *gin.Context) {
	u, okUser := currentUser(c)
	if !okUser {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.userSvc.Update(c.Request.Context(), u.UserID, services.UserUpdate{
		Address:        req.Address,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, updated)
}
