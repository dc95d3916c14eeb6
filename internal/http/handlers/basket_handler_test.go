package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/services"
)

func TestBasketFlow_AddListRemove(t *testing.T) {
	r, db := newTestAPI(t)
	token := registerAndLogin(t, r, 42)

	p := domain.Product{Category: "iphone", Name: "iPhone 15", Price: 500}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	// Add with explicit quantity
	w := doJSON(t, r, http.MethodPost, "/api/basket", token, gin.H{"productId": p.ID, "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add: status %d body %s", w.Code, w.Body.String())
	}
	var added AddToBasketResponse
	if err := json.Unmarshal(w.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !added.Success || added.Product.Quantity != 2 || added.Product.Price != 500 {
		t.Fatalf("unexpected add response: %+v", added)
	}

	// Quantity defaults to 1 when omitted
	w = doJSON(t, r, http.MethodPost, "/api/basket", token, gin.H{"productId": p.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("add default qty: status %d body %s", w.Code, w.Body.String())
	}

	// List
	w = doJSON(t, r, http.MethodGet, "/api/basket", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var entries []services.BasketEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}

	// Remove the first row
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/basket/%d", entries[0].ItemID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove: status %d body %s", w.Code, w.Body.String())
	}

	// Removing it again is a 404
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/basket/%d", entries[0].ItemID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("double remove: status %d, want 404", w.Code)
	}
}

func TestBasketAdd_SnapshotFrozenAcrossReprice(t *testing.T) {
	r, db := newTestAPI(t)
	token := registerAndLogin(t, r, 1)

	p := domain.Product{Category: "iphone", Name: "iPhone 15", Price: 500}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/basket", token, gin.H{"productId": p.ID, "quantity": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("add: status %d", w.Code)
	}

	if err := db.Model(&domain.Product{}).Where("id = ?", p.ID).Update("price", 600).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/basket", token, nil)
	var entries []services.BasketEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Price != 500 {
		t.Fatalf("snapshot price changed: %+v", entries)
	}
}

func TestBasketAdd_Errors(t *testing.T) {
	r, _ := newTestAPI(t)
	token := registerAndLogin(t, r, 1)

	// Unknown product
	w := doJSON(t, r, http.MethodPost, "/api/basket", token, gin.H{"productId": 9999})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}

	// Negative quantity
	w = doJSON(t, r, http.MethodPost, "/api/basket", token, gin.H{"productId": 1, "quantity": -2})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}

	// No token at all
	w = doJSON(t, r, http.MethodPost, "/api/basket", "", gin.H{"productId": 1})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestBasketRemove_ForeignRow(t *testing.T) {
	r, db := newTestAPI(t)
	owner := registerAndLogin(t, r, 1)
	other := registerAndLogin(t, r, 2)

	p := domain.Product{Category: "mac", Name: "MacBook", Price: 1000}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/basket", owner, gin.H{"productId": p.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("add: status %d", w.Code)
	}
	var added AddToBasketResponse
	if err := json.Unmarshal(w.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The other user sees a 404, not a deletion
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/basket/%d", added.Product.ItemID), other, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: status %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/basket", owner, nil)
	var entries []services.BasketEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("owner's basket was touched: %+v", entries)
	}
}
