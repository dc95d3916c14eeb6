// Package services defines the business logic for users, catalog, basket,
// and orders. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrUserNotFound indicates that no user record exists for the
	// requested identifier.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when creating a user whose id is already
	// taken. Duplicate creation attempts are rejected, not merged.
	ErrUserExists = errors.New("user already exists")

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrBasketItemNotFound indicates that no basket row with the given id
	// belongs to the current user.
	ErrBasketItemNotFound = errors.New("basket item not found")

	// ErrEmptyOrder is returned when an order-creation request carries an
	// empty item list.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrInvalidToken is returned for any bearer-token failure: bad
	// signature, expired token, missing subject claim, or a subject that
	// no longer resolves to a stored user.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidQuantity is returned when an add-to-basket request carries
	// a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
