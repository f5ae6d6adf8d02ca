// Command orderbot resolves spoken restaurant orders against a catalog.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/orderbot/internal/adapters/driven/catalog/square"
	"github.com/custodia-labs/orderbot/internal/adapters/driven/config/file"
	"github.com/custodia-labs/orderbot/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/orderbot/internal/adapters/driving/cli"
	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
	"github.com/custodia-labs/orderbot/internal/core/services"
	"github.com/custodia-labs/orderbot/internal/logger"
)

// version is set via -ldflags at release time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional.
	_ = godotenv.Load()

	envCfg, err := loadEnv()
	if err != nil {
		return fail(err)
	}

	configStore, err := file.NewConfigStore(envCfg.ConfigDir)
	if err != nil {
		return fail(err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fail(err)
	}
	envCfg.apply(settings)

	store, err := sqlite.NewStore(envCfg.DataDir)
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	upstream, err := newUpstream(settings.Square)
	if err != nil {
		return fail(err)
	}

	cache := services.NewCatalogCache(selectSource(settings, upstream, store.CatalogArchive()), settings.Catalog.Cache)

	synonyms := file.NewSynonymStore(synonymsPath(settings, configStore.Path()))
	rules, err := synonyms.List(ctx)
	if err != nil {
		logger.Warn("synonyms: %v; starting with an empty table", err)
	}
	resolver := services.NewNameResolver(rules)

	orders := services.NewOrderService(cache, resolver, services.NewComposer(settings.Order), settings.Order.Policy)
	scheduler := services.NewScheduler(schedulerConfig(settingsService, settings), store.SchedulerStore(), cache)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Catalog:   cache,
		Order:     orders,
		Archive:   store.CatalogArchive(),
		Upstream:  upstream,
		Synonyms:  synonyms,
		Tasks:     store.SchedulerStore(),
		Scheduler: scheduler,
		Settings:  settingsService,
		Daemons: []cli.Daemon{
			func(ctx context.Context) error {
				return synonyms.Watch(ctx, resolver.SetSynonyms)
			},
		},
	})

	return cli.Execute(ctx)
}

// newUpstream returns the Square client, or nil when no token is configured.
func newUpstream(cfg domain.SquareSettings) (driven.CatalogSource, error) {
	if cfg.Token == "" {
		return nil, nil
	}
	client, err := square.NewClient(square.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Version: cfg.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("creating square client: %w", err)
	}
	return client, nil
}

// selectSource picks the catalog source for the cache. A square source
// without a token fails on first use so that offline commands still work.
func selectSource(settings *domain.AppSettings, upstream, archive driven.CatalogSource) driven.CatalogSource {
	if settings.Catalog.Source == domain.CatalogSourceSQLite {
		return archive
	}
	if upstream == nil {
		return unconfiguredSource{err: services.ErrSquareTokenRequired}
	}
	return upstream
}

// schedulerConfig applies the resolved warm interval, which may come from
// the environment, to the stored schedule.
func schedulerConfig(svc *services.SettingsService, settings *domain.AppSettings) domain.SchedulerConfig {
	cfg := svc.GetSchedulerConfig()
	warm := cfg.GetTaskConfig(domain.TaskIDCatalogWarm)
	warm.Interval = settings.Catalog.WarmInterval
	warm.Enabled = warm.Interval > 0
	cfg.TaskConfigs[domain.TaskIDCatalogWarm] = warm
	return cfg
}

func synonymsPath(settings *domain.AppSettings, configPath string) string {
	if settings.Synonyms.Path != "" {
		return settings.Synonyms.Path
	}
	return filepath.Join(filepath.Dir(configPath), file.SynonymsFileName)
}

// unconfiguredSource reports why no catalog can be fetched.
type unconfiguredSource struct {
	err error
}

func (s unconfiguredSource) ListCatalog(context.Context, string) (*domain.CatalogPage, error) {
	return nil, s.err
}

func fail(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
