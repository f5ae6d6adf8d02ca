package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_Count(t *testing.T) {
	tests := []struct {
		name string
		q    Quantity
		want int
	}{
		{"empty", "", 1},
		{"integer", "3", 3},
		{"zero", "0", 1},
		{"negative", "-2", 1},
		{"fraction truncated", "2.7", 2},
		{"small fraction", "0.5", 1},
		{"non numeric", "two", 1},
		{"nan", "NaN", 1},
		{"infinity", "Inf", 1},
		{"padded", " 4 ", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Count())
		})
	}
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	var line RequestedLine

	require.NoError(t, json.Unmarshal([]byte(`{"name":"soda","quantity":2}`), &line))
	assert.Equal(t, 2, line.Quantity.Count())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"soda","quantity":"3"}`), &line))
	assert.Equal(t, 3, line.Quantity.Count())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"soda","quantity":null}`), &line))
	assert.Equal(t, 1, line.Quantity.Count())
}

func TestRequestedLine_DisplayName(t *testing.T) {
	assert.Equal(t, "burger", RequestedLine{Name: "burger", VariationID: "V1"}.DisplayName())
	assert.Equal(t, "V1", RequestedLine{VariationID: "V1"}.DisplayName())
	assert.Equal(t, "large", RequestedLine{Variation: "large"}.DisplayName())
}

func TestResolvedLine_LineItem(t *testing.T) {
	line := ResolvedLine{
		VariationID: "V1",
		Quantity:    2,
		ModifierIDs: []string{"M1"},
		Note:        "no onions",
	}

	item := line.LineItem()

	assert.Equal(t, "V1", item.VariationID)
	assert.Equal(t, "2", item.Quantity)
	assert.Equal(t, []string{"M1"}, item.ModifierIDs)
	assert.Equal(t, "no onions", item.Note)
}

func TestSynonymRule_Validate(t *testing.T) {
	assert.NoError(t, SynonymRule{Pattern: "cheeseburger", Item: "Burger"}.Validate())
	assert.ErrorIs(t, SynonymRule{Pattern: "", Item: "Burger"}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, SynonymRule{Pattern: "x"}.Validate(), ErrInvalidInput)
}
