package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmailTaken is returned on signup with a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a request without a valid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a valid session lacking the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrOutOfStock is returned when adding a zero-stock product to a cart.
	ErrOutOfStock = errors.New("out of stock")
	// ErrEmptyCart is returned on checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError carries a user-facing message about malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError.
func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError names the product that could not be reserved
// during checkout.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
