package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Catalog Errors.

	// ErrCatalogUnavailable indicates the upstream catalog fetch failed.
	// Fatal while no snapshot has ever been built.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrRateLimited indicates the catalog API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Order Errors.

	// ErrEmptyOrder indicates no requested line resolved to a catalog variation.
	ErrEmptyOrder = errors.New("empty order: no line matched the catalog")

	// ErrUnresolvedItems indicates at least one line failed to resolve under strict policy.
	ErrUnresolvedItems = errors.New("unresolved items")
)

// UnresolvedItemsError lists the raw names that failed to match the catalog.
// It is only returned when the strict order policy is enabled.
type UnresolvedItemsError struct {
	Names []string
}

func (e *UnresolvedItemsError) Error() string {
	return fmt.Sprintf("unresolved items: %s", strings.Join(e.Names, ", "))
}

// Unwrap allows errors.Is(err, ErrUnresolvedItems).
func (e *UnresolvedItemsError) Unwrap() error {
	return ErrUnresolvedItems
}
