package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/acmesaas/assistant/internal/app"
	"github.com/acmesaas/assistant/internal/config"
	"github.com/acmesaas/assistant/internal/console"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Example: `  assistant ask "How many seats do we have left?"
  assistant ask "Who are the admins on my team?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	term := console.New(os.Stdin, os.Stdout)

	if ok := checkRequiredConfig(term, cfg); !ok {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Setup(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer a.Close()

	question := strings.Join(args, " ")

	r := term.NewRenderer()
	if _, err := a.Assistant.ExecuteStream(ctx, question, nil, r.HandleChunk); err != nil {
		return err
	}
	r.Finish()
	return nil
}
