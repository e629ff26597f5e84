package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRequest          = errors.New("invalid request")
	ErrNotFound                = errors.New("not found")
	ErrInsufficientStock       = errors.New("insufficient product stock")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrDuplicateNumber         = errors.New("duplicate order number")
	ErrOrderNumberingExhausted = errors.New("order numbering exhausted")
	ErrMergeFailed             = errors.New("cart merge failed")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrProductInUse            = errors.New("product is referenced by cart or order lines")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrAccountExists           = errors.New("account already exists")
)

// StockError names the first product whose stock could not cover the line.
type StockError struct {
	ProductID string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: product %s", ErrInsufficientStock, e.ProductID)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError maps offending input fields to a short reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidRequest, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
