package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
	"github.com/custodia-labs/orderbot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyCatalogSource       = "catalog.source"
	keyCatalogTTL          = "catalog.ttl"
	keyCatalogFetchTimeout = "catalog.fetch_timeout"
	keyCatalogAllowStale   = "catalog.allow_stale"
	keyCatalogWarmInterval = "catalog.warm_interval"
	keySchedulerEnabled    = "scheduler.enabled"
	keySquareBaseURL       = "square.base_url"
	keySquareToken         = "square.token"
	keySquareVersion       = "square.version"
	keyOrderStrict         = "order.strict"
	keyOrderGreeting       = "order.greeting"
	keyOrderClosing        = "order.closing"
	keyOrderEmpty          = "order.empty_message"
	keySynonymsPath        = "synonyms.path"
)

// ErrSquareTokenRequired is returned when the square source has no token.
var ErrSquareTokenRequired = errors.New("square catalog source requires an access token")

// SettingsService reads and writes application settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			Source: s.getCatalogSource(defaults.Catalog.Source),
			Cache: domain.CacheConfig{
				TTL:          s.configStore.GetDuration(keyCatalogTTL, defaults.Catalog.Cache.TTL),
				FetchTimeout: s.configStore.GetDuration(keyCatalogFetchTimeout, defaults.Catalog.Cache.FetchTimeout),
				AllowStale:   s.getBool(keyCatalogAllowStale, defaults.Catalog.Cache.AllowStale),
			},
			WarmInterval: s.configStore.GetDuration(keyCatalogWarmInterval, defaults.Catalog.WarmInterval),
		},
		Square: domain.SquareSettings{
			BaseURL: s.configStore.GetString(keySquareBaseURL), // Empty uses the production API
			Token:   s.configStore.GetString(keySquareToken),
			Version: s.configStore.GetString(keySquareVersion),
		},
		Order: domain.OrderSettings{
			Policy:   domain.OrderPolicy{Strict: s.getBool(keyOrderStrict, defaults.Order.Policy.Strict)},
			Greeting: s.getString(keyOrderGreeting, defaults.Order.Greeting),
			Closing:  s.getString(keyOrderClosing, defaults.Order.Closing),
			Empty:    s.getString(keyOrderEmpty, defaults.Order.Empty),
		},
		Synonyms: domain.SynonymSettings{
			Path: s.configStore.GetString(keySynonymsPath),
		},
	}

	return settings, nil
}

// Save persists application settings.
// The Square token is only written when set, so it can live in the environment.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	type setting struct {
		key   string
		value any
	}
	values := []setting{
		{keyCatalogSource, string(settings.Catalog.Source)},
		{keyCatalogTTL, settings.Catalog.Cache.TTL.String()},
		{keyCatalogFetchTimeout, settings.Catalog.Cache.FetchTimeout.String()},
		{keyCatalogAllowStale, settings.Catalog.Cache.AllowStale},
		{keyCatalogWarmInterval, settings.Catalog.WarmInterval.String()},
		{keySquareBaseURL, settings.Square.BaseURL},
		{keySquareVersion, settings.Square.Version},
		{keyOrderStrict, settings.Order.Policy.Strict},
		{keyOrderGreeting, settings.Order.Greeting},
		{keyOrderClosing, settings.Order.Closing},
		{keyOrderEmpty, settings.Order.Empty},
		{keySynonymsPath, settings.Synonyms.Path},
	}
	if settings.Square.Token != "" {
		values = append(values, setting{keySquareToken, settings.Square.Token})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetCatalogSource selects where the catalog is read from.
func (s *SettingsService) SetCatalogSource(source domain.CatalogSourceType) error {
	if !source.IsValid() {
		return fmt.Errorf("%w: catalog source %q", domain.ErrInvalidInput, source)
	}
	if err := s.configStore.Set(keyCatalogSource, string(source)); err != nil {
		return fmt.Errorf("save catalog source: %w", err)
	}
	return nil
}

// SetStrict toggles the strict order policy.
func (s *SettingsService) SetStrict(strict bool) error {
	if err := s.configStore.Set(keyOrderStrict, strict); err != nil {
		return fmt.Errorf("save order policy: %w", err)
	}
	return nil
}

// Validate checks that the configured catalog source is usable.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if !settings.Catalog.Source.IsValid() {
		return fmt.Errorf("%w: catalog source %q", domain.ErrInvalidInput, settings.Catalog.Source)
	}
	if settings.Catalog.Source == domain.CatalogSourceSquare && strings.TrimSpace(settings.Square.Token) == "" {
		return ErrSquareTokenRequired
	}
	if settings.Catalog.Cache.TTL <= 0 || settings.Catalog.Cache.FetchTimeout <= 0 {
		return fmt.Errorf("%w: catalog ttl and fetch timeout must be positive", domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig returns the warm-up schedule.
// A zero or negative warm interval disables the warm task.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()

	// Master switch
	if _, exists := s.configStore.Get(keySchedulerEnabled); exists {
		cfg.Enabled = s.configStore.GetBool(keySchedulerEnabled)
	}

	taskCfg := cfg.TaskConfigs[domain.TaskIDCatalogWarm]
	taskCfg.Interval = s.configStore.GetDuration(keyCatalogWarmInterval, taskCfg.Interval)
	if taskCfg.Interval <= 0 {
		taskCfg.Enabled = false
	}
	cfg.TaskConfigs[domain.TaskIDCatalogWarm] = taskCfg

	return cfg
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getCatalogSource(defaultVal domain.CatalogSourceType) domain.CatalogSourceType {
	source := domain.CatalogSourceType(strings.ToLower(s.configStore.GetString(keyCatalogSource)))
	if !source.IsValid() {
		return defaultVal
	}
	return source
}
