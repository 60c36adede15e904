package services

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Sentinel errors returned by the services; handlers map these to HTTP
// status codes.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrItemNotFound        = errors.New("item not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrClaimNotFound       = errors.New("claim not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrItemAlreadyClaimed  = errors.New("item is already claimed")
	ErrInvalidPrice        = errors.New("price must be a non-negative amount with at most two decimal places")
	ErrNotOwner            = errors.New("operation not permitted for this user")
	ErrNotificationFailed  = errors.New("failed to deliver notification")
)

// validatePrice rejects negative amounts and sub-cent precision. Trailing
// zeros are fine: "30.000" is still an exact two-decimal amount.
func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() || !price.Equal(price.Truncate(2)) {
		return ErrInvalidPrice
	}
	return nil
}
