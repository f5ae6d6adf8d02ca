package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the catalog source, order policy and Square credentials.

Settings are stored in ~/.orderbot/config.toml. Environment variables
(ORDERBOT_*) override the file at startup.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSourceCmd = &cobra.Command{
	Use:   "source [square|sqlite]",
	Short: "Set the catalog source",
	Long: `Set where the catalog is read from.

Available sources:
  square - fetch from the Square catalog API (requires a token)
  sqlite - read the local archive written by "catalog import"`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSource,
}

var settingsStrictCmd = &cobra.Command{
	Use:   "strict [on|off]",
	Short: "Toggle the strict order policy",
	Long:  `When strict, an order is rejected if any requested item is not on the menu.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsStrict,
}

var settingsTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store the Square access token",
	Long:  `Prompts for the Square access token and saves it to the config file.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsToken,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSourceCmd)
	settingsCmd.AddCommand(settingsStrictCmd)
	settingsCmd.AddCommand(settingsTokenCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Source: %s\n", settings.Catalog.Source)
	cmd.Printf("  TTL: %s\n", settings.Catalog.Cache.TTL)
	cmd.Printf("  Fetch timeout: %s\n", settings.Catalog.Cache.FetchTimeout)
	cmd.Printf("  Serve stale on error: %s\n", yesNo(settings.Catalog.Cache.AllowStale))
	if settings.Catalog.WarmInterval > 0 {
		cmd.Printf("  Warm-up every: %s\n", settings.Catalog.WarmInterval)
	} else {
		cmd.Println("  Warm-up: disabled")
	}
	cmd.Println()

	cmd.Println("[Square]")
	if settings.Square.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Square.BaseURL)
	}
	if settings.Square.Version != "" {
		cmd.Printf("  API version: %s\n", settings.Square.Version)
	}
	if settings.Square.Token != "" {
		cmd.Printf("  Token: %s\n", maskAPIKey(settings.Square.Token))
	} else {
		cmd.Println("  Token: (not set)")
	}
	cmd.Println()

	cmd.Println("[Order]")
	cmd.Printf("  Strict: %s\n", yesNo(settings.Order.Policy.Strict))
	cmd.Printf("  Greeting: %s\n", settings.Order.Greeting)
	cmd.Printf("  Closing: %s\n", settings.Order.Closing)
	cmd.Println()

	if err := settingsService.Validate(settings); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSource(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	source := domain.CatalogSourceType(strings.ToLower(args[0]))
	if err := settingsService.SetCatalogSource(source); err != nil {
		return err
	}
	cmd.Printf("Catalog source set to %s\n", source)
	return nil
}

func runSettingsStrict(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	strict, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetStrict(strict); err != nil {
		return err
	}
	if strict {
		cmd.Println("Strict order policy enabled")
	} else {
		cmd.Println("Strict order policy disabled")
	}
	return nil
}

func runSettingsToken(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Square access token: ")
	token, err := readSecret(cmd)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if token == "" {
		return errors.New("token cannot be empty")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.Square.Token = token
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Token saved (%s)\n", maskAPIKey(token))
	return nil
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	cmd.Println()
	return strings.TrimSpace(line), nil
}

// parseOnOff accepts on/off as well as anything strconv.ParseBool does.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
	return b, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// maskAPIKey masks an API key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
