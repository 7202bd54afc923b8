// Package cmd implements the assistant's command-line interface.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/acmesaas/assistant/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "In-product AI assistant demo",
	Long: `A demo chat assistant embedded in a SaaS product.

It answers subscription, billing, and team questions from mock product
data, and product how-to questions through a hosted documentation-search
server. Run without arguments to start an interactive chat.`,
	SilenceUsage: true,
	RunE:         runChat,
}

// Execute is the entry point called from main.
func Execute() error {
	slog.SetDefault(initLogger())
	return rootCmd.Execute()
}

// initLogger builds the process logger. DEBUG (any value) enables debug
// level. Logs go to stderr: stdout carries the chat transcript, and in MCP
// server mode it is reserved for JSON-RPC frames.
func initLogger() log.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level})
}
