package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderbot/internal/adapters/driving/mcp"
	"github.com/custodia-labs/orderbot/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so voice and chat assistants can
place orders.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

While serving, the catalog is kept warm in the background and the synonym
file is reloaded when it changes.

Examples:
  # Stdio mode (default)
  orderbot mcp serve

  # HTTP mode
  orderbot mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Order:   orderService,
		Catalog: catalogService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	stop := startBackground(ctx)
	defer stop()

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// startBackground launches the scheduler and daemons. The returned func
// stops the scheduler; daemons exit when ctx is cancelled.
func startBackground(ctx context.Context) func() {
	for _, d := range daemons {
		go func(d Daemon) {
			if err := d(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("background task stopped: %v", err)
			}
		}(d)
	}

	if schedulerService == nil {
		return func() {}
	}
	go func() {
		if err := schedulerService.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler stopped: %v", err)
		}
	}()
	return func() {
		if err := schedulerService.Stop(); err != nil {
			logger.Warn("stopping scheduler: %v", err)
		}
	}
}
