package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateUser_SetsTimestampsAndPersists(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	start := time.Now().UTC().Add(-time.Minute)
	u := &domain.User{UserID: 42, FirstName: "Ada", LastName: "Lovelace", Username: "ada"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", u.CreatedAt)
	}

	got, err := GetUser(context.Background(), db, 42)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.FirstName != "Ada" || got.Username != "ada" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	u := &domain.User{UserID: 7, FirstName: "First"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	err := CreateUser(context.Background(), db, &domain.User{UserID: 7, FirstName: "Second"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	_, err := GetUser(context.Background(), db, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUserFields_PartialAndMissing(t *testing.T) {
	db := newRepoDB(t, &domain.User{})

	u := &domain.User{UserID: 1, FirstName: "Ada", Address: "Old Street 1"}
	if err := CreateUser(context.Background(), db, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err := UpdateUserFields(context.Background(), db, 1, map[string]any{
		"address":         "New Street 2",
		"delivery_method": "courier",
	})
	if err != nil {
		t.Fatalf("UpdateUserFields: %v", err)
	}

	got, err := GetUser(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Address != "New Street 2" || got.DeliveryMethod != "courier" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.FirstName != "Ada" {
		t.Fatalf("untouched field changed: %+v", got)
	}

	// Unknown user id
	err = UpdateUserFields(context.Background(), db, 555, map[string]any{"address": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}
