package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var synonymsJSON bool

var synonymsCmd = &cobra.Command{
	Use:   "synonyms",
	Short: "List configured synonyms",
	Long: `Lists the synonym table used to map informal names to catalog items.

Synonyms live in ~/.orderbot/synonyms.toml:

  [[synonym]]
  pattern = "cheeseburger"
  item = "Burger"
  modifiers = ["add cheese"]`,
	Args: cobra.NoArgs,
	RunE: runSynonyms,
}

func init() {
	synonymsCmd.Flags().BoolVar(&synonymsJSON, "json", false, "output synonyms as JSON")
	rootCmd.AddCommand(synonymsCmd)
}

func runSynonyms(cmd *cobra.Command, _ []string) error {
	if synonymStore == nil {
		return errors.New("synonym store not configured")
	}

	rules, err := synonymStore.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading synonyms: %w", err)
	}

	if synonymsJSON {
		return writeJSON(cmd, rules)
	}

	if len(rules) == 0 {
		cmd.Println("No synonyms configured.")
		return nil
	}

	for _, rule := range rules {
		line := fmt.Sprintf("  %s -> %s", rule.Pattern, rule.Item)
		if len(rule.Modifiers) > 0 {
			line += " + " + strings.Join(rule.Modifiers, ", ")
		}
		if rule.Hint != "" {
			line += fmt.Sprintf(" (hint: %s)", rule.Hint)
		}
		cmd.Println(line)
	}
	return nil
}
