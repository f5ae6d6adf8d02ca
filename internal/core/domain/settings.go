package domain

import "time"

// Default catalog cache settings.
const (
	DefaultCatalogTTL   = 5 * time.Minute
	DefaultFetchTimeout = 30 * time.Second
)

// CatalogSourceType selects the catalog collaborator.
type CatalogSourceType string

// Available catalog sources.
const (
	// CatalogSourceSquare fetches from the remote catalog API.
	CatalogSourceSquare CatalogSourceType = "square"

	// CatalogSourceSQLite reads a previously imported local archive.
	CatalogSourceSQLite CatalogSourceType = "sqlite"
)

// IsValid returns true if the source type is recognised.
func (t CatalogSourceType) IsValid() bool {
	return t == CatalogSourceSquare || t == CatalogSourceSQLite
}

// CacheConfig holds catalog cache configuration.
type CacheConfig struct {
	// TTL is the maximum snapshot age served without a refresh.
	TTL time.Duration

	// FetchTimeout bounds one complete upstream fetch sequence.
	FetchTimeout time.Duration

	// AllowStale serves the previous snapshot when a refresh fails.
	AllowStale bool
}

// DefaultCacheConfig returns sensible cache defaults.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:          DefaultCatalogTTL,
		FetchTimeout: DefaultFetchTimeout,
	}
}

// Default order-service settings.
const (
	DefaultGreeting     = "Thanks"
	DefaultClosing      = "Is that correct?"
	DefaultEmptyMessage = "Thanks! Your order is empty."
)

// AppSettings holds the resolved application configuration.
type AppSettings struct {
	Catalog  CatalogSettings
	Square   SquareSettings
	Order    OrderSettings
	Synonyms SynonymSettings
}

// CatalogSettings selects and tunes the catalog source.
type CatalogSettings struct {
	Source CatalogSourceType
	Cache  CacheConfig

	// WarmInterval is how often the scheduler refreshes the catalog.
	// Zero disables background warm-up.
	WarmInterval time.Duration
}

// SquareSettings configures the remote catalog API.
type SquareSettings struct {
	BaseURL string
	Token   string
	Version string
}

// OrderSettings configures order policy and the confirmation template.
type OrderSettings struct {
	Policy   OrderPolicy
	Greeting string
	Closing  string
	Empty    string
}

// SynonymSettings locates the synonym table.
type SynonymSettings struct {
	// Path is the synonym file. Empty uses synonyms.toml in the config dir.
	Path string
}

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Catalog: CatalogSettings{
			Source:       CatalogSourceSquare,
			Cache:        DefaultCacheConfig(),
			WarmInterval: 4 * time.Minute,
		},
		Order: OrderSettings{
			Greeting: DefaultGreeting,
			Closing:  DefaultClosing,
			Empty:    DefaultEmptyMessage,
		},
	}
}
