package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/firebase/genkit/go/ai"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/acmesaas/assistant/internal/app"
	"github.com/acmesaas/assistant/internal/assistant"
	"github.com/acmesaas/assistant/internal/config"
	"github.com/acmesaas/assistant/internal/console"
	"github.com/acmesaas/assistant/internal/log"
)

var chatMemory bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive conversation with the assistant.

Each question is answered independently unless --memory (or
chat.preserve_history in the config) is set, in which case the
conversation history is carried across turns.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatMemory, "memory", false, "carry conversation history across turns")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if chatMemory {
		cfg.Chat.PreserveHistory = true
	}

	term := console.New(os.Stdin, os.Stdout)

	if ok := checkRequiredConfig(term, cfg); !ok {
		// Missing credentials are a setup problem, not a crash: the
		// diagnostic above tells the user what to export. Exit cleanly.
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionID := uuid.NewString()
	logger := slog.Default().With("session", sessionID)

	term.Printf("\nInitializing assistant...\n")

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	term.Banner(cfg.ProductName)

	return chatLoop(ctx, term, a.Assistant, cfg.Chat.PreserveHistory, logger)
}

// turnRunner is the slice of the assistant the chat loop drives. Narrow so
// tests can substitute a recording fake.
type turnRunner interface {
	ExecuteStream(ctx context.Context, input string, history []*ai.Message, callback assistant.StreamCallback) (*assistant.Response, error)
}

// chatLoop runs the read-dispatch-render cycle until a quit command, end of
// input, or context cancellation. Quit commands and blank lines never reach
// the runner.
func chatLoop(ctx context.Context, term *console.Console, runner turnRunner, preserveHistory bool, logger log.Logger) error {
	var history []*ai.Message
	for {
		input, ok := term.ReadLine()
		if !ok || ctx.Err() != nil {
			term.Goodbye()
			return nil
		}
		if input == "" {
			continue
		}
		if console.IsQuit(input) {
			term.Goodbye()
			return nil
		}

		term.AssistantPrefix()
		r := term.NewRenderer()
		resp, err := runner.ExecuteStream(ctx, input, history, r.HandleChunk)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				term.Goodbye()
				return nil
			}
			term.Errorf("\nSorry, something went wrong: %v", err)
			logger.Error("assistant turn failed", "error", err)
			continue
		}
		r.Finish()

		if preserveHistory {
			history = resp.History
		}
	}
}

// checkRequiredConfig verifies the credentials the chat session cannot run
// without and prints a setup diagnostic when any are missing. Returns false
// if the session should not start.
func checkRequiredConfig(term *console.Console, cfg *config.Config) bool {
	var missing []string

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		if os.Getenv("GEMINI_API_KEY") == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		if os.Getenv("OPENAI_API_KEY") == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}
	if cfg.ValidateDocs() != nil {
		if cfg.Docs.ServerURL == "" {
			missing = append(missing, "KAPA_MCP_SERVER_URL")
		}
		if cfg.Docs.APIKey == "" {
			missing = append(missing, "KAPA_API_KEY")
		}
	}
	if len(missing) == 0 {
		return true
	}

	term.Printf("\n⚠️  Missing required configuration:\n\n")
	for _, name := range missing {
		term.Printf("  - %s\n", name)
	}
	term.Printf("\nSet the variables above and try again, e.g.:\n\n")
	for _, name := range missing {
		term.Printf("  export %s=...\n", name)
	}
	term.Printf("\n")
	return false
}
