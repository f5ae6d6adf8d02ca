package driven

import "time"

// ConfigStore provides access to application configuration.
// Keys use dot notation ("catalog.ttl"); implementations handle persistence
// (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetBool returns false if the key is missing or not a boolean.
	GetBool(key string) bool

	// GetDuration parses string values such as "5m".
	// Returns fallback if the key is missing or unparsable.
	GetDuration(key string, fallback time.Duration) time.Duration

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
