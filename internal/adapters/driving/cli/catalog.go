package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/services"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the catalog cache and local archive",
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a catalog refresh",
	Long:  `Fetches the catalog from the configured source and rebuilds the snapshot.`,
	Args:  cobra.NoArgs,
	RunE:  runCatalogRefresh,
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog cache status",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStatus,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the catalog into the local archive",
	Long: `Replaces the local SQLite archive with a fresh copy of the catalog.

By default the catalog is fetched from Square. Use --file to import a JSON
array of catalog objects instead (the format written by "catalog export").`,
	Args: cobra.NoArgs,
	RunE: runCatalogImport,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the local archive as JSON",
	Args:  cobra.NoArgs,
	RunE:  runCatalogExport,
}

var (
	catalogImportFile string
	catalogExportFile string
	catalogStatusJSON bool
)

// warmHistoryLimit is the number of warm-up runs shown by catalog status.
const warmHistoryLimit = 5

func init() {
	catalogImportCmd.Flags().StringVarP(&catalogImportFile, "file", "f", "", "import from a JSON file (- for stdin)")
	catalogExportCmd.Flags().StringVarP(&catalogExportFile, "output", "o", "", "write to a file instead of stdout")
	catalogStatusCmd.Flags().BoolVar(&catalogStatusJSON, "json", false, "output status as JSON")

	catalogCmd.AddCommand(catalogRefreshCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogRefresh(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	start := time.Now()
	snap, err := catalogService.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	stats := snap.Stats()
	cmd.Printf("Catalog refreshed in %s\n", time.Since(start).Round(time.Millisecond))
	printStats(cmd, stats)
	return nil
}

func runCatalogStatus(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	status := catalogService.Status()
	if catalogStatusJSON {
		return writeJSON(cmd, status)
	}

	if !status.Built {
		cmd.Println("Catalog: not loaded")
	} else {
		cmd.Printf("Catalog: built %s ago (%s)\n",
			status.Age.Round(time.Second), status.BuiltAt.Format(time.RFC3339))
		printStats(cmd, status.Stats)
	}
	if status.Refreshing {
		cmd.Println("Refresh in progress")
	}
	if status.LastError != "" {
		cmd.Printf("Last error: %s\n", status.LastError)
	}

	if catalogArchive != nil {
		counts, err := catalogArchive.CountObjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("counting archive: %w", err)
		}
		cmd.Printf("Archive: %s\n", formatCounts(counts))
	}

	return printWarmHistory(cmd)
}

func printWarmHistory(cmd *cobra.Command) error {
	if schedulerStore == nil {
		return nil
	}

	history, err := schedulerStore.GetTaskHistory(cmd.Context(), domain.TaskIDCatalogWarm, warmHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading warm-up history: %w", err)
	}
	if len(history) == 0 {
		return nil
	}

	cmd.Println("Recent warm-ups:")
	for _, run := range history {
		outcome := fmt.Sprintf("%d variations", run.ItemsProcessed)
		if !run.Success {
			outcome = "failed: " + run.Error
		}
		cmd.Printf("  %s  %s\n", run.StartedAt.Format(time.RFC3339), outcome)
	}
	return nil
}

func runCatalogImport(cmd *cobra.Command, _ []string) error {
	if catalogArchive == nil {
		return errors.New("catalog archive not configured")
	}

	var (
		objects []domain.CatalogObject
		err     error
	)
	if catalogImportFile != "" {
		objects, err = readCatalogFile(cmd, catalogImportFile)
	} else {
		if upstreamCatalog == nil {
			return errors.New("no upstream catalog configured; set ORDERBOT_SQUARE_TOKEN or use --file")
		}
		objects, err = services.FetchAll(cmd.Context(), upstreamCatalog)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if err := catalogArchive.ReplaceCatalog(cmd.Context(), objects); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d catalog objects\n", len(objects))
	return nil
}

func readCatalogFile(cmd *cobra.Command, path string) ([]domain.CatalogObject, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var objects []domain.CatalogObject
	if err := json.NewDecoder(r).Decode(&objects); err != nil {
		return nil, fmt.Errorf("decoding catalog objects: %w", err)
	}
	return objects, nil
}

func runCatalogExport(cmd *cobra.Command, _ []string) error {
	if catalogArchive == nil {
		return errors.New("catalog archive not configured")
	}

	objects, err := services.FetchAll(cmd.Context(), catalogArchive)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if objects == nil {
		objects = []domain.CatalogObject{}
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if catalogExportFile == "" {
		cmd.Println(string(data))
		return nil
	}
	if err := os.WriteFile(catalogExportFile, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", catalogExportFile, err)
	}
	cmd.Printf("Exported %d catalog objects to %s\n", len(objects), catalogExportFile)
	return nil
}

func printStats(cmd *cobra.Command, stats domain.SnapshotStats) {
	cmd.Printf("  Items:          %d\n", stats.Items)
	cmd.Printf("  Variations:     %d\n", stats.Variations)
	cmd.Printf("  Modifier lists: %d\n", stats.ModifierLists)
	cmd.Printf("  Modifiers:      %d\n", stats.Modifiers)
}

// formatCounts renders archive counts as "12 objects (ITEM 4, ITEM_VARIATION 8)".
func formatCounts(counts map[domain.CatalogObjectType]int) string {
	total := 0
	parts := make([]string, 0, len(counts))
	for _, t := range domain.AllObjectTypes() {
		if n := counts[t]; n > 0 {
			total += n
			parts = append(parts, fmt.Sprintf("%s %d", t, n))
		}
	}
	if total == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d objects (%s)", total, strings.Join(parts, ", "))
}
