package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity is a caller-supplied line quantity as received on the wire.
// It accepts JSON numbers and strings; Count coerces it to a positive integer.
type Quantity string

// UnmarshalJSON accepts numbers, numeric strings and null.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = Quantity(s)
		return nil
	}
	*q = Quantity(data)
	return nil
}

// Count returns the quantity as a positive integer.
// Missing, non-numeric, non-finite and non-positive values become 1.
// Fractional values are truncated.
func (q Quantity) Count() int {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(q)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(f)
	if n < 1 {
		return 1
	}
	return n
}

// RequestedLine is one caller-supplied order line. It is immutable once received.
type RequestedLine struct {
	Name        string   `json:"name,omitempty"`
	VariationID string   `json:"variationId,omitempty"`
	Variation   string   `json:"variation,omitempty"`
	Quantity    Quantity `json:"quantity,omitempty"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// DisplayName returns the best raw identifier for error reporting.
func (l RequestedLine) DisplayName() string {
	switch {
	case l.Name != "":
		return l.Name
	case l.VariationID != "":
		return l.VariationID
	default:
		return l.Variation
	}
}

// ResolvedLine is a requested line matched against the catalog.
// It is only ever constructed from a successfully resolved variation.
type ResolvedLine struct {
	VariationID   string
	ItemName      string
	VariationName string
	Quantity      int
	ModifierIDs   []string
	Note          string

	// IncludedNames are canonical names of resolved modifiers.
	IncludedNames []string

	// ExcludedNames are targets of negated phrases ("no onions" -> "onions").
	ExcludedNames []string

	// SpokenFragment is the rendering of this line used in the confirmation.
	SpokenFragment string
}

// LineItem converts the resolved line to its wire form.
func (l ResolvedLine) LineItem() LineItem {
	return LineItem{
		VariationID: l.VariationID,
		Quantity:    strconv.Itoa(l.Quantity),
		ModifierIDs: l.ModifierIDs,
		Note:        l.Note,
	}
}

// OrderRequest is the resolution engine boundary request.
type OrderRequest struct {
	Lines               []RequestedLine `json:"lines"`
	CustomerName        string          `json:"customerName,omitempty"`
	CustomerPhone       string          `json:"customerPhone,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	ScheduledPickupTime string          `json:"scheduledPickupTime,omitempty"`
}

// LineItem is one structured, catalog-valid order line for the order backend.
type LineItem struct {
	VariationID string   `json:"variationId"`
	Quantity    string   `json:"quantity"`
	ModifierIDs []string `json:"modifierIds,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// OrderResult is the resolution engine success response.
type OrderResult struct {
	LineItems          []LineItem `json:"lineItems"`
	SpokenConfirmation string     `json:"spokenConfirmation"`

	// IdempotencyKey identifies this build for submission to the order backend.
	IdempotencyKey string `json:"idempotencyKey"`

	CustomerName        string `json:"customerName,omitempty"`
	CustomerPhone       string `json:"customerPhone,omitempty"`
	Notes               string `json:"notes,omitempty"`
	ScheduledPickupTime string `json:"scheduledPickupTime,omitempty"`

	// Dropped lists the raw names of lines that did not resolve.
	Dropped []string `json:"dropped,omitempty"`

	// Lines holds the resolved lines behind LineItems.
	Lines []ResolvedLine `json:"-"`
}

// OrderPolicy controls order-level validity.
type OrderPolicy struct {
	// Strict rejects the whole order when any line fails to resolve.
	Strict bool
}
