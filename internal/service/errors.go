package service

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses at the API layer
var (
	// ErrValidation marks malformed or out-of-range input
	ErrValidation = errors.New("validation failed")

	// ErrOrderNotFound is returned when an order lookup misses
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotFound is returned when a contact, testimonial or catalog
	// lookup misses
	ErrNotFound = errors.New("not found")

	// ErrPaymentVerificationFailed is returned when a payment callback
	// carries a signature the gateway did not produce
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
)

// ProductNotFoundError reports a cart line referencing an unknown product
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// ProductOutOfStockError reports a cart line referencing an out-of-stock
// product
type ProductOutOfStockError struct {
	ProductID int64
	Name      string
}

func (e *ProductOutOfStockError) Error() string {
	return fmt.Sprintf("product %s is out of stock", e.Name)
}
