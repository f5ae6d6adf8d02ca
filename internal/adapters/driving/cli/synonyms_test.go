package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

func TestSynonymsCmd_Use(t *testing.T) {
	assert.Equal(t, "synonyms", synonymsCmd.Use)
	assert.Contains(t, synonymsCmd.Long, "[[synonym]]")
}

func TestSynonymsCmd_NilStore(t *testing.T) {
	SetServices(Services{})

	_, err := executeCommand(t, "", "synonyms")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "synonym store not configured")
}

func TestSynonymsCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "", "synonyms")

	require.NoError(t, err)
	assert.Contains(t, out, "No synonyms configured.")
}

func TestSynonymsCmd_Lists(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.synonyms.rules = []domain.SynonymRule{
		{Pattern: "cheeseburger", Item: "Burger", Modifiers: []string{"add cheese"}},
		{Pattern: "chocolate shake", Item: "Shake", Hint: "chocolate"},
	}

	out, err := executeCommand(t, "", "synonyms")

	require.NoError(t, err)
	assert.Contains(t, out, "cheeseburger -> Burger + add cheese")
	assert.Contains(t, out, "chocolate shake -> Shake (hint: chocolate)")
}

func TestSynonymsCmd_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.synonyms.rules = []domain.SynonymRule{{Pattern: "coke", Item: "Soda"}}

	out, err := executeCommand(t, "", "synonyms", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"pattern": "coke"`)
	assert.Contains(t, out, `"item": "Soda"`)
}

func TestSynonymsCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.synonyms.err = errors.New("bad toml")

	_, err := executeCommand(t, "", "synonyms")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading synonyms")
}
