package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

var (
	menuJSON   bool
	menuFilter string
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List sellable items and prices",
	Long:  `Lists every sellable item variation in the current catalog snapshot, sorted by label.`,
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&menuJSON, "json", false, "output the menu as JSON")
	menuCmd.Flags().StringVarP(&menuFilter, "filter", "q", "", "only show labels containing this text")
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}

	entries, err := orderService.Menu(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing menu: %w", err)
	}

	if filter := strings.ToLower(menuFilter); filter != "" {
		kept := make([]domain.MenuEntry, 0, len(entries))
		for _, entry := range entries {
			if strings.Contains(strings.ToLower(entry.Label), filter) {
				kept = append(kept, entry)
			}
		}
		entries = kept
	}

	if menuJSON {
		return writeJSON(cmd, map[string]any{"items": entries})
	}

	if len(entries) == 0 {
		cmd.Println("The menu is empty.")
		return nil
	}

	width := 0
	for _, entry := range entries {
		width = max(width, len(entry.Label))
	}
	for _, entry := range entries {
		cmd.Printf("  %-*s  %8s  %s\n", width, entry.Label, entry.Price, entry.VariationID)
	}
	return nil
}
