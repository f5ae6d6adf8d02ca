package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// Output formats.
const (
	formatAuto = "auto"
	formatJSON = "json"
	formatText = "text"
)

var (
	orderFile     string
	orderFormat   string
	orderCustomer string
)

var orderCmd = &cobra.Command{
	Use:   "order [item...]",
	Short: "Resolve an order against the catalog",
	Long: `Resolves an order request and prints the structured line items together
with the spoken confirmation.

Items can be given as arguments, one line per argument:
  orderbot order cheeseburger "large fries"

Or as a JSON request on stdin or from a file:
  echo '{"lines":[{"name":"burger","quantity":2,"modifiers":["extra cheese"]}]}' | orderbot order
  orderbot order --file request.json

Output is JSON when stdout is not a terminal, unless --format is given.`,
	RunE: runOrder,
}

func init() {
	orderCmd.Flags().StringVarP(&orderFile, "file", "f", "", "read the JSON request from a file (- for stdin)")
	orderCmd.Flags().StringVar(&orderFormat, "format", formatAuto, "output format: auto, json or text")
	orderCmd.Flags().StringVar(&orderCustomer, "customer", "", "customer name for the confirmation")
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) error {
	if orderService == nil {
		return errors.New("order service not configured")
	}

	req, err := readOrderRequest(cmd, args)
	if err != nil {
		return err
	}

	result, err := orderService.PlaceOrder(cmd.Context(), req)
	if err != nil {
		var unresolved *domain.UnresolvedItemsError
		if errors.As(err, &unresolved) {
			return fmt.Errorf("order rejected, not on the menu: %s", strings.Join(unresolved.Names, ", "))
		}
		return fmt.Errorf("order failed: %w", err)
	}

	format, err := resolveFormat(cmd.OutOrStdout(), orderFormat)
	if err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(cmd, result)
	}
	printOrderResult(cmd, result)
	return nil
}

func readOrderRequest(cmd *cobra.Command, args []string) (domain.OrderRequest, error) {
	if len(args) > 0 {
		if orderFile != "" {
			return domain.OrderRequest{}, errors.New("use either item arguments or --file, not both")
		}
		req := domain.OrderRequest{CustomerName: orderCustomer}
		for _, arg := range args {
			req.Lines = append(req.Lines, domain.RequestedLine{Name: arg})
		}
		return req, nil
	}

	var r io.Reader = cmd.InOrStdin()
	if orderFile != "" && orderFile != "-" {
		f, err := os.Open(orderFile)
		if err != nil {
			return domain.OrderRequest{}, fmt.Errorf("opening request: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req domain.OrderRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return domain.OrderRequest{}, fmt.Errorf("decoding request: %w", err)
	}
	if orderCustomer != "" {
		req.CustomerName = orderCustomer
	}
	return req, nil
}

// resolveFormat picks text for terminals and JSON for pipes when format is auto.
func resolveFormat(w io.Writer, format string) (string, error) {
	switch format {
	case formatJSON, formatText:
		return format, nil
	case formatAuto, "":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return formatText, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, json or text)", format)
	}
}

func printOrderResult(cmd *cobra.Command, result *domain.OrderResult) {
	cmd.Println(result.SpokenConfirmation)
	cmd.Println()
	cmd.Println("Line items:")
	for i, item := range result.LineItems {
		cmd.Printf("  [%d] %s x%s\n", i+1, item.VariationID, item.Quantity)
		if len(item.ModifierIDs) > 0 {
			cmd.Printf("      Modifiers: %s\n", strings.Join(item.ModifierIDs, ", "))
		}
		if item.Note != "" {
			cmd.Printf("      Note: %s\n", item.Note)
		}
	}
	if len(result.Dropped) > 0 {
		cmd.Printf("\nNot on the menu: %s\n", strings.Join(result.Dropped, ", "))
	}
	if result.IdempotencyKey != "" {
		cmd.Printf("\nIdempotency key: %s\n", result.IdempotencyKey)
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
