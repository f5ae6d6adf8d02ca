package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderbot/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/orderbot/internal/core/services"
)

// setupSettingsTest installs a settings service over an in-memory store.
func setupSettingsTest() (*memory.ConfigStore, func()) {
	store := memory.NewConfigStore()
	SetServices(Services{Settings: services.NewSettingsService(store)})
	return store, func() { SetServices(Services{}) }
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "EAAAl1234567890abcdef",
			expected: "EAAA...cdef",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{input: "on", expected: true},
		{input: "OFF", expected: false},
		{input: "yes", expected: true},
		{input: "true", expected: true},
		{input: "0", expected: false},
		{input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseOnOff(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	commands := settingsCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "show")
	assert.Contains(t, names, "source")
	assert.Contains(t, names, "strict")
	assert.Contains(t, names, "token")
}

func TestSettingsShow_NilService(t *testing.T) {
	SetServices(Services{})

	_, err := executeCommand(t, "", "settings")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingsShow_Defaults(t *testing.T) {
	_, cleanup := setupSettingsTest()
	defer cleanup()

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Source: square")
	assert.Contains(t, out, "TTL: 5m0s")
	assert.Contains(t, out, "Warm-up every: 4m0s")
	assert.Contains(t, out, "Token: (not set)")
	assert.Contains(t, out, "Strict: no")
	assert.Contains(t, out, "Warning: square catalog source requires an access token")
}

func TestSettingsSource(t *testing.T) {
	store, cleanup := setupSettingsTest()
	defer cleanup()

	out, err := executeCommand(t, "", "settings", "source", "SQLite")

	require.NoError(t, err)
	assert.Contains(t, out, "Catalog source set to sqlite")
	assert.Equal(t, "sqlite", store.GetString("catalog.source"))

	out, err = executeCommand(t, "", "settings", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "Warning:")
}

func TestSettingsSource_Invalid(t *testing.T) {
	_, cleanup := setupSettingsTest()
	defer cleanup()

	_, err := executeCommand(t, "", "settings", "source", "csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")
}

func TestSettingsStrict(t *testing.T) {
	store, cleanup := setupSettingsTest()
	defer cleanup()

	out, err := executeCommand(t, "", "settings", "strict", "on")

	require.NoError(t, err)
	assert.Contains(t, out, "Strict order policy enabled")
	assert.True(t, store.GetBool("order.strict"))
}

func TestSettingsToken_FromPipe(t *testing.T) {
	store, cleanup := setupSettingsTest()
	defer cleanup()

	out, err := executeCommand(t, "EAAAl1234567890abcdef\n", "settings", "token")

	require.NoError(t, err)
	assert.Contains(t, out, "Token saved (EAAA...cdef)")
	assert.Equal(t, "EAAAl1234567890abcdef", store.GetString("square.token"))
}

func TestSettingsToken_Empty(t *testing.T) {
	_, cleanup := setupSettingsTest()
	defer cleanup()

	_, err := executeCommand(t, "\n", "settings", "token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "token cannot be empty")
}
