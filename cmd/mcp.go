package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	mcpserver "github.com/acmesaas/assistant/internal/mcp"
	"github.com/acmesaas/assistant/internal/product"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the product tools as an MCP server over stdio",
	Long: `Expose the subscription and team tools as a Model Context Protocol
server on stdin/stdout, so external MCP clients (IDEs, other agents) can
call them. Logs go to stderr; stdout carries only JSON-RPC frames.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := mcpserver.NewServer(mcpserver.Config{
		Name:    "acme-assistant",
		Version: AppVersion,
		Store:   product.NewStore(),
		Logger:  slog.Default(),
	})
	if err != nil {
		return err
	}

	slog.Info("starting MCP server on stdio")
	return srv.Run(ctx, &sdk.StdioTransport{})
}
