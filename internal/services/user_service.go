// Package services – UserService
//
// This file implements the user-profile service: creation on first contact,
// reading the current profile, and partial updates. Partial update semantics
// follow an explicit optional-field struct: a nil pointer means "field not
// supplied, leave it alone", never "reset to empty".
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/repo"
)

// UserUpdate carries the fields a profile update may touch. Each field is a
// pointer so the handler can distinguish "absent" from "set to empty".
type UserUpdate struct {
	Address        *string `json:"address"`
	DeliveryMethod *string `json:"delivery_method"`
	PaymentMethod  *string `json:"payment_method"`
}

// UserService provides create/read/update operations over user profiles.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Create inserts a new user record. A duplicate id yields ErrUserExists;
// idempotent creation is deliberately not supported.
func (s *UserService) Create(ctx context.Context, userID int64, firstName, lastName, username string) (*domain.User, error) {
	u := &domain.User{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
	}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// Get returns the user record for userID, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update applies the supplied fields to the user's profile and returns the
// refreshed record. Absent (nil) fields are left untouched.
func (s *UserService) Update(ctx context.Context, userID int64, upd UserUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if upd.Address != nil {
		fields["address"] = *upd.Address
	}
	if upd.DeliveryMethod != nil {
		fields["delivery_method"] = *upd.DeliveryMethod
	}
	if upd.PaymentMethod != nil {
		fields["payment_method"] = *upd.PaymentMethod
	}

	if len(fields) > 0 {
		if err := repo.UpdateUserFields(ctx, s.DB, userID, fields); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}
	return s.Get(ctx, userID)
}
