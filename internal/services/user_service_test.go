package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUserCreate_And_Duplicate(t *testing.T) {
	db := newSvcDB(t, &domain.User{})
	svc := NewUserService(db)

	u, err := svc.Create(context.Background(), 42, "Ada", "Lovelace", "ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.UserID != 42 || u.FirstName != "Ada" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Create(context.Background(), 42, "Other", "", ""); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserGet_Missing(t *testing.T) {
	db := newSvcDB(t, &domain.User{})
	svc := NewUserService(db)

	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUpdate_PartialFields(t *testing.T) {
	db := newSvcDB(t, &domain.User{})
	svc := NewUserService(db)

	if _, err := svc.Create(context.Background(), 1, "Ada", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Only the address is set; the other pointers stay nil.
	got, err := svc.Update(context.Background(), 1, UserUpdate{Address: strPtr("Street 5")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Address != "Street 5" {
		t.Fatalf("address not updated: %+v", got)
	}
	if got.DeliveryMethod != "" || got.PaymentMethod != "" {
		t.Fatalf("nil fields were written: %+v", got)
	}

	// Second partial update keeps the earlier address.
	got, err = svc.Update(context.Background(), 1, UserUpdate{
		DeliveryMethod: strPtr("pickup"),
		PaymentMethod:  strPtr("cash"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Address != "Street 5" || got.DeliveryMethod != "pickup" || got.PaymentMethod != "cash" {
		t.Fatalf("merge mismatch: %+v", got)
	}
}

func TestUserUpdate_NoFieldsIsNoop(t *testing.T) {
	db := newSvcDB(t, &domain.User{})
	svc := NewUserService(db)

	if _, err := svc.Create(context.Background(), 1, "Ada", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(context.Background(), 1, UserUpdate{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FirstName != "Ada" {
		t.Fatalf("noop update changed the row: %+v", got)
	}
}

func TestUserUpdate_MissingUser(t *testing.T) {
	db := newSvcDB(t, &domain.User{})
	svc := NewUserService(db)

	if _, err := svc.Update(context.Background(), 9, UserUpdate{Address: strPtr("x")}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
