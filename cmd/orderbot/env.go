package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// envConfig holds environment overrides. Unset variables leave the
// config file values in place.
type envConfig struct {
	ConfigDir string `env:"ORDERBOT_CONFIG_DIR"`
	DataDir   string `env:"ORDERBOT_DATA_DIR"`

	CatalogSource string         `env:"ORDERBOT_CATALOG_SOURCE"`
	CatalogTTL    time.Duration  `env:"ORDERBOT_CATALOG_TTL"`
	FetchTimeout  time.Duration  `env:"ORDERBOT_FETCH_TIMEOUT"`
	WarmInterval  *time.Duration `env:"ORDERBOT_WARM_INTERVAL"`
	AllowStale    *bool          `env:"ORDERBOT_ALLOW_STALE"`

	SquareBaseURL string `env:"ORDERBOT_SQUARE_BASE_URL"`
	SquareToken   string `env:"ORDERBOT_SQUARE_TOKEN"`
	SquareVersion string `env:"ORDERBOT_SQUARE_VERSION"`

	Strict   *bool  `env:"ORDERBOT_ORDER_STRICT"`
	Greeting string `env:"ORDERBOT_ORDER_GREETING"`

	SynonymsPath string `env:"ORDERBOT_SYNONYMS_PATH"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// apply overlays the set environment values onto settings.
func (c envConfig) apply(s *domain.AppSettings) {
	if src := domain.CatalogSourceType(strings.ToLower(c.CatalogSource)); src.IsValid() {
		s.Catalog.Source = src
	}
	if c.CatalogTTL > 0 {
		s.Catalog.Cache.TTL = c.CatalogTTL
	}
	if c.FetchTimeout > 0 {
		s.Catalog.Cache.FetchTimeout = c.FetchTimeout
	}
	if c.WarmInterval != nil {
		s.Catalog.WarmInterval = *c.WarmInterval
	}
	if c.AllowStale != nil {
		s.Catalog.Cache.AllowStale = *c.AllowStale
	}
	if c.SquareBaseURL != "" {
		s.Square.BaseURL = c.SquareBaseURL
	}
	if c.SquareToken != "" {
		s.Square.Token = c.SquareToken
	}
	if c.SquareVersion != "" {
		s.Square.Version = c.SquareVersion
	}
	if c.Strict != nil {
		s.Order.Policy.Strict = *c.Strict
	}
	if c.Greeting != "" {
		s.Order.Greeting = c.Greeting
	}
	if c.SynonymsPath != "" {
		s.Synonyms.Path = c.SynonymsPath
	}
}
