// Catalog endpoints (public, read-only).
//
//   - GET /api/products        (list, optional exact `category` filter)
//   - GET /api/products/{id}   (single product, 404 if missing)
//   - GET /api/categories      (distinct category list)
//   - GET /api/news            (newest-first news feed, optional `limit`)
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/services"
	"github.com/ogwplus/go-store-backend/internal/utils"
)

// CategoriesResponse wraps the distinct category list.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ListProducts godoc
// @ID          listProducts
// @Summary     List products
// @Description Returns all products, optionally restricted to an exact category match.
// @Tags        Catalog
// @Produce     json
//
// @Param       category  query  string  false  "Exact category filter"  example(phones)
//
// @Success     200  {array}   domain.Product
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.catalogSvc.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, products)
}

// GetProduct godoc
// @ID          getProduct
// @Summary     Single product
// @Tags        Catalog
// @Produce     json
//
// @Param       id  path  int  true  "Product id"
//
// @Success     200  {object}  domain.Product
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Product not found"
// @Router      /products/{id} [get]
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "product id must be a positive integer")
		return
	}

	p, err := h.catalogSvc.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, p)
}

// ListCategories godoc
// @ID          listCategories
// @Summary     Distinct product categories
// @Tags        Catalog
// @Produce     json
//
// @Success     200  {object}  handlers.CategoriesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, CategoriesResponse{Categories: cats})
}

// ListNews godoc
// @ID          listNews
// @Summary     News feed
// @Description Returns news entries newest-first. `limit` caps the number of entries; omitted or 0 returns all.
// @Tags        Catalog
// @Produce     json
//
// @Param       limit  query  int  false  "Maximum entries to return"  minimum(0)
//
// @Success     200  {array}   domain.News
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /news [get]
func (h *Handlers) ListNews(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	if limit < 0 {
		limit = 0
	}

	news, err := h.catalogSvc.ListNews(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, news)
}
