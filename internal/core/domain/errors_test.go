package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrCatalogUnavailable", ErrCatalogUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrEmptyOrder", ErrEmptyOrder},
		{"ErrUnresolvedItems", ErrUnresolvedItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrCatalogUnavailable,
		ErrRateLimited,
		ErrEmptyOrder,
		ErrUnresolvedItems,
	}

	for i, a := range allErrors {
		for j, b := range allErrors {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestUnresolvedItemsError(t *testing.T) {
	err := &UnresolvedItemsError{Names: []string{"pizza", "tacos"}}

	assert.Equal(t, "unresolved items: pizza, tacos", err.Error())
	assert.True(t, errors.Is(err, ErrUnresolvedItems))
	assert.False(t, errors.Is(err, ErrEmptyOrder))

	wrapped := fmt.Errorf("place order: %w", err)
	var target *UnresolvedItemsError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, []string{"pizza", "tacos"}, target.Names)
}
