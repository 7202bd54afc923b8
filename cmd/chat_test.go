package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/ai"

	"github.com/acmesaas/assistant/internal/assistant"
	"github.com/acmesaas/assistant/internal/config"
	"github.com/acmesaas/assistant/internal/console"
	"github.com/acmesaas/assistant/internal/log"
)

// fakeRunner records every dispatched turn.
type fakeRunner struct {
	inputs      []string
	historyLens []int
	response    *assistant.Response
	err         error
}

func (f *fakeRunner) ExecuteStream(_ context.Context, input string, history []*ai.Message, _ assistant.StreamCallback) (*assistant.Response, error) {
	f.inputs = append(f.inputs, input)
	f.historyLens = append(f.historyLens, len(history))
	if f.err != nil {
		return nil, f.err
	}
	if f.response != nil {
		return f.response, nil
	}
	return &assistant.Response{FinalText: "ok"}, nil
}

func runLoop(t *testing.T, input string, runner *fakeRunner, preserveHistory bool) string {
	t.Helper()
	var buf bytes.Buffer
	term := console.New(strings.NewReader(input), &buf)
	if err := chatLoop(context.Background(), term, runner, preserveHistory, log.NewNop()); err != nil {
		t.Fatalf("chatLoop: %v", err)
	}
	return buf.String()
}

func TestChatLoopQuitNeverDispatches(t *testing.T) {
	for _, input := range []string{"quit\n", "exit\n", "Q\n", "  QUIT  \n"} {
		runner := &fakeRunner{}
		out := runLoop(t, input, runner, false)
		if len(runner.inputs) != 0 {
			t.Errorf("input %q dispatched %v, want none", input, runner.inputs)
		}
		if !strings.Contains(out, "Goodbye") {
			t.Errorf("input %q missing farewell:\n%s", input, out)
		}
	}
}

func TestChatLoopEOFExitsCleanly(t *testing.T) {
	runner := &fakeRunner{}
	out := runLoop(t, "", runner, false)
	if len(runner.inputs) != 0 {
		t.Errorf("EOF dispatched %v, want none", runner.inputs)
	}
	if !strings.Contains(out, "Goodbye") {
		t.Errorf("missing farewell:\n%s", out)
	}
}

func TestChatLoopSkipsBlankLines(t *testing.T) {
	runner := &fakeRunner{}
	runLoop(t, "\n   \nhello\nquit\n", runner, false)
	if len(runner.inputs) != 1 || runner.inputs[0] != "hello" {
		t.Errorf("dispatched %v, want [hello]", runner.inputs)
	}
}

func TestChatLoopHistoryThreading(t *testing.T) {
	runner := &fakeRunner{response: &assistant.Response{
		FinalText: "ok",
		History: []*ai.Message{
			ai.NewUserMessage(ai.NewTextPart("first")),
			ai.NewModelMessage(ai.NewTextPart("ok")),
		},
	}}
	runLoop(t, "first\nsecond\nquit\n", runner, true)

	if len(runner.historyLens) != 2 {
		t.Fatalf("dispatched %d turns, want 2", len(runner.historyLens))
	}
	if runner.historyLens[0] != 0 || runner.historyLens[1] != 2 {
		t.Errorf("history lengths = %v, want [0 2]", runner.historyLens)
	}
}

func TestChatLoopStatelessByDefault(t *testing.T) {
	runner := &fakeRunner{response: &assistant.Response{
		FinalText: "ok",
		History:   []*ai.Message{ai.NewUserMessage(ai.NewTextPart("x"))},
	}}
	runLoop(t, "first\nsecond\nquit\n", runner, false)

	if runner.historyLens[0] != 0 || runner.historyLens[1] != 0 {
		t.Errorf("history lengths = %v, want [0 0]", runner.historyLens)
	}
}

func TestChatLoopTurnErrorContinues(t *testing.T) {
	runner := &fakeRunner{err: errors.New("model unavailable")}
	out := runLoop(t, "hello\nagain\nquit\n", runner, false)

	if len(runner.inputs) != 2 {
		t.Errorf("dispatched %v, want both turns despite errors", runner.inputs)
	}
	if !strings.Contains(out, "Sorry, something went wrong") {
		t.Errorf("missing error message:\n%s", out)
	}
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(v, "")
	}
}

func TestCheckRequiredConfigMissing(t *testing.T) {
	clearCredentialEnv(t)

	var buf bytes.Buffer
	term := console.New(strings.NewReader(""), &buf)
	cfg := &config.Config{Provider: config.ProviderOpenAI}

	if checkRequiredConfig(term, cfg) {
		t.Fatal("checkRequiredConfig = true with nothing configured")
	}

	out := buf.String()
	for _, want := range []string{
		"Missing required configuration",
		"OPENAI_API_KEY",
		"KAPA_MCP_SERVER_URL",
		"KAPA_API_KEY",
		"export OPENAI_API_KEY=",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagnostic missing %q:\n%s", want, out)
		}
	}
}

func TestCheckRequiredConfigGoogleAIKey(t *testing.T) {
	clearCredentialEnv(t)

	var buf bytes.Buffer
	term := console.New(strings.NewReader(""), &buf)
	cfg := &config.Config{Provider: config.ProviderGoogleAI}

	if checkRequiredConfig(term, cfg) {
		t.Fatal("checkRequiredConfig = true with nothing configured")
	}

	out := buf.String()
	if !strings.Contains(out, "GEMINI_API_KEY") {
		t.Errorf("googleai diagnostic missing GEMINI_API_KEY:\n%s", out)
	}
	if strings.Contains(out, "OPENAI_API_KEY") {
		t.Errorf("googleai diagnostic should not mention OPENAI_API_KEY:\n%s", out)
	}
}

func TestCheckRequiredConfigComplete(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var buf bytes.Buffer
	term := console.New(strings.NewReader(""), &buf)
	cfg := &config.Config{
		Provider: config.ProviderOpenAI,
		Docs: config.DocsConfig{
			ServerURL: "https://mcp.example.com/mcp",
			APIKey:    "kapa-key",
		},
	}

	if !checkRequiredConfig(term, cfg) {
		t.Fatal("checkRequiredConfig = false with everything configured")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output for complete config: %q", buf.String())
	}
}
