// Token issuance endpoint.
//
//   - POST /api/token   (exchange a user id for a bearer token)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/services"
)

// TokenRequest is the JSON payload for POST /api/token.
type TokenRequest struct {
	// UserID identifies the user the token should be bound to.
	UserID int64 `json:"user_id" binding:"required" example:"42"`
}

// IssueToken godoc
// @ID          issueToken
// @Summary     Exchange a user id for a bearer token
// @Description Returns a signed bearer token with a fixed expiry window for an existing user.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.TokenRequest  true  "Token request"
//
// @Success     200  {object}  services.Token
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /token [post]
func (h *Handlers) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	tok, err := h.authSvc.IssueToken(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, tok)
}
