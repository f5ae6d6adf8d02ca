// Package cli provides the cobra command tree for orderbot.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
	"github.com/custodia-labs/orderbot/internal/core/ports/driving"
	"github.com/custodia-labs/orderbot/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services injected by main. Commands check for nil before use.
var (
	catalogService   driving.CatalogService
	orderService     driving.OrderService
	catalogArchive   driven.CatalogArchive
	upstreamCatalog  driven.CatalogSource
	synonymStore     driven.SynonymStore
	schedulerStore   driven.SchedulerStore
	schedulerService driving.Scheduler
	settingsService  driving.SettingsService
	daemons          []Daemon
)

// Daemon is a long-running helper started alongside serving commands,
// such as a config file watcher. It returns when ctx is cancelled.
type Daemon func(ctx context.Context) error

// Services holds the dependencies for the command tree.
type Services struct {
	Catalog   driving.CatalogService
	Order     driving.OrderService
	Archive   driven.CatalogArchive
	Upstream  driven.CatalogSource
	Synonyms  driven.SynonymStore
	Tasks     driven.SchedulerStore
	Scheduler driving.Scheduler
	Settings  driving.SettingsService
	Daemons   []Daemon
}

var rootCmd = &cobra.Command{
	Use:   "orderbot",
	Short: "Resolve spoken orders against a restaurant catalog",
	Long: `orderbot turns loosely structured orders ("two cheeseburgers, one with no
onions") into catalog-valid line items and a spoken confirmation.

The catalog is fetched from Square or from a local SQLite archive and cached
in memory. Synonyms are read from ~/.orderbot/synonyms.toml.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// SetServices injects the services used by commands.
func SetServices(s Services) {
	catalogService = s.Catalog
	orderService = s.Order
	catalogArchive = s.Archive
	upstreamCatalog = s.Upstream
	synonymStore = s.Synonyms
	schedulerStore = s.Tasks
	schedulerService = s.Scheduler
	settingsService = s.Settings
	daemons = s.Daemons
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
