package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

func TestMenuCmd_Use(t *testing.T) {
	assert.Equal(t, "menu", menuCmd.Use)
}

func TestMenuCmd_RejectsArgs(t *testing.T) {
	_, err := executeCommand(t, "", "menu", "extra")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestMenuCmd_NilService(t *testing.T) {
	SetServices(Services{})

	_, err := executeCommand(t, "", "menu")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order service not configured")
}

func TestMenuCmd_Table(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "", "menu")

	require.NoError(t, err)
	assert.Contains(t, out, "Burger - Regular     $8.99  VAR_BURGER_REG")
	assert.Contains(t, out, "Fries                $3.99  VAR_FRIES")
}

func TestMenuCmd_Filter(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "", "menu", "-q", "FRI")

	require.NoError(t, err)
	assert.Contains(t, out, "VAR_FRIES")
	assert.NotContains(t, out, "VAR_BURGER_REG")
	assert.Len(t, ts.order.menu, 2, "filtering must not modify the service's slice")
}

func TestMenuCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, "", "menu", "--json")

	require.NoError(t, err)
	var body struct {
		Items []domain.MenuEntry `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, testMenu(), body.Items)
}

func TestMenuCmd_Empty(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.order.menu = nil

	out, err := executeCommand(t, "", "menu")

	require.NoError(t, err)
	assert.Contains(t, out, "The menu is empty.")
}

func TestMenuCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.order.menuErr = errors.New("catalog down")

	_, err := executeCommand(t, "", "menu")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing menu")
}
