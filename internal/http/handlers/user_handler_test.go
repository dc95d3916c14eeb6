package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

func TestCreateUser_Conflict(t *testing.T) {
	r, _ := newTestAPI(t)

	body := gin.H{"user_id": 7, "first_name": "Ada"}
	w := doJSON(t, r, http.MethodPost, "/api/users", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/users", "", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("second create: status %d, want 409", w.Code)
	}
	if e := decodeErr(t, w); e.Code != ErrCodeConflict {
		t.Fatalf("error code %q, want %q", e.Code, ErrCodeConflict)
	}
}

func TestCreateUser_MissingFirstName(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", "", gin.H{"user_id": 7})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestGetCurrentUser(t *testing.T) {
	r, _ := newTestAPI(t)
	token := registerAndLogin(t, r, 42)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var u domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.UserID != 42 || u.FirstName != "Test" {
		t.Fatalf("unexpected profile: %+v", u)
	}
}

func TestUpdateCurrentUser_Partial(t *testing.T) {
	r, _ := newTestAPI(t)
	token := registerAndLogin(t, r, 1)

	w := doJSON(t, r, http.MethodPut, "/api/users/me", token, gin.H{"address": "Street 5"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/users/me", token, gin.H{"delivery_method": "pickup"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	var u domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Address != "Street 5" || u.DeliveryMethod != "pickup" {
		t.Fatalf("partial update lost data: %+v", u)
	}
}

func TestUpdateCurrentUser_BadBody(t *testing.T) {
	r, _ := newTestAPI(t)
	token := registerAndLogin(t, r, 1)

	w := doJSON(t, r, http.MethodPut, "/api/users/me", token, "not-an-object")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}
