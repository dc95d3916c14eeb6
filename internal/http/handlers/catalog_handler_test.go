package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

func seedCatalog(t *testing.T, db *gorm.DB) []domain.Product {
	t.Helper()
	seed := []domain.Product{
		{Category: "iphone", Name: "iPhone 15", Price: 999},
		{Category: "iphone", Name: "iPhone 15 Pro", Price: 1199, NewPrice: 1099},
		{Category: "iphone-case", Name: "Clear Case", Price: 49},
		{Category: "mac", Name: "MacBook Air", Price: 1299},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return seed
}

func TestListProducts_NoFilter(t *testing.T) {
	r, db := newTestAPI(t)
	seedCatalog(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/products", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var got []domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("want 4 products, got %d", len(got))
	}
}

func TestListProducts_ExactCategory(t *testing.T) {
	r, db := newTestAPI(t)
	seedCatalog(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/products?category=iphone", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var got []domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// "iphone-case" must not leak into "iphone"
	if len(got) != 2 {
		t.Fatalf("want 2 products, got %d: %+v", len(got), got)
	}
	for _, p := range got {
		if p.Category != "iphone" {
			t.Fatalf("filter leak: %+v", p)
		}
	}
}

func TestGetProduct_Statuses(t *testing.T) {
	r, db := newTestAPI(t)
	seed := seedCatalog(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/products/1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var p domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != seed[0].Name {
		t.Fatalf("wrong product: %+v", p)
	}

	w = doJSON(t, r, http.MethodGet, "/api/products/9999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/products/abc", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestListCategories(t *testing.T) {
	r, db := newTestAPI(t)
	seedCatalog(t, db)

	w := doJSON(t, r, http.MethodGet, "/api/categories", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp CategoriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Categories) != 3 {
		t.Fatalf("want 3 categories, got %v", resp.Categories)
	}
}

func TestListNews_Limit(t *testing.T) {
	r, db := newTestAPI(t)
	for _, txt := range []string{"first", "second", "third"} {
		if err := db.Create(&domain.News{Text: txt}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/news?limit=2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var news []domain.News
	if err := json.Unmarshal(w.Body.Bytes(), &news); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(news) != 2 || news[0].Text != "third" {
		t.Fatalf("unexpected news page: %+v", news)
	}

	// Bad limit falls back to "all"
	w = doJSON(t, r, http.MethodGet, "/api/news?limit=abc", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &news); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(news) != 3 {
		t.Fatalf("want 3 items, got %d", len(news))
	}
}
