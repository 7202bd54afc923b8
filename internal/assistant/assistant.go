// Package assistant drives the Genkit agent behind the chat interface.
//
// The reasoning loop, tool dispatch, and token streaming all belong to
// Genkit; this package only assembles the model, system prompt, and
// toolset, and exposes a streaming execute call the console renders from.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"

	"github.com/acmesaas/assistant/internal/log"
)

// FallbackMessage is returned when the model produces neither text nor tool
// requests.
const FallbackMessage = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

// DefaultMaxTurns bounds the agentic loop when the config leaves it unset.
const DefaultMaxTurns = 5

// StreamCallback is called for each chunk of the streaming response.
// Return an error to abort the stream.
type StreamCallback func(ctx context.Context, chunk *ai.ModelResponseChunk) error

// Response is the complete result of one assistant turn.
type Response struct {
	FinalText    string            // model's final text output
	ToolRequests []*ai.ToolRequest // tool requests observed across all agentic rounds of the turn
	History      []*ai.Message     // conversation history including this turn
}

// Config contains all required parameters for the assistant.
type Config struct {
	Genkit      *genkit.Genkit
	Logger      log.Logger
	Tools       []ai.Tool // pre-registered product + docs tools
	ModelName   string    // provider-qualified, e.g. "openai/gpt-5.1"
	ProductName string    // display name used in the system prompt
	MaxTurns    int       // maximum agentic loop turns (default DefaultMaxTurns)

	// RateLimiter proactively throttles model calls. Optional; nil uses a
	// default of 10 req/s with a burst of 30.
	RateLimiter *rate.Limiter
}

func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if len(cfg.Tools) == 0 {
		return errors.New("at least one tool is required")
	}
	if cfg.ModelName == "" {
		return errors.New("model name is required")
	}
	return nil
}

// Assistant is the product's conversational agent. It is stateless across
// turns: callers that want conversation memory thread the History returned
// by ExecuteStream back into the next call. All fields are captured
// immutably at construction, so concurrent executions are safe.
type Assistant struct {
	g            *genkit.Genkit
	logger       log.Logger
	modelName    string
	systemPrompt string
	maxTurns     int
	limiter      *rate.Limiter

	toolRefs  []ai.ToolRef // cached for ai.WithTools
	toolNames string       // cached comma-separated for logging
}

// New creates an Assistant from the given configuration.
func New(cfg Config) (*Assistant, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}

	productName := cfg.ProductName
	if productName == "" {
		productName = "<Your Product>"
	}

	toolRefs := make([]ai.ToolRef, len(cfg.Tools))
	names := make([]string, len(cfg.Tools))
	for i, t := range cfg.Tools {
		toolRefs[i] = t
		names[i] = t.Name()
	}

	a := &Assistant{
		g:            cfg.Genkit,
		logger:       cfg.Logger,
		modelName:    cfg.ModelName,
		systemPrompt: systemPrompt(productName),
		maxTurns:     maxTurns,
		limiter:      limiter,
		toolRefs:     toolRefs,
		toolNames:    strings.Join(names, ", "),
	}

	a.logger.Info("assistant initialized",
		"model", a.modelName,
		"totalTools", len(toolRefs),
		"maxTurns", a.maxTurns,
	)

	return a, nil
}

// Execute runs one turn without streaming.
func (a *Assistant) Execute(ctx context.Context, input string, history []*ai.Message) (*Response, error) {
	return a.ExecuteStream(ctx, input, history, nil)
}

// ExecuteStream runs one turn of the assistant. history may be nil for a
// stateless turn. If callback is non-nil it receives each response chunk as
// it arrives; the final response is returned either way.
func (a *Assistant) ExecuteStream(ctx context.Context, input string, history []*ai.Message, callback StreamCallback) (*Response, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	messages := make([]*ai.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(input)))

	opts := []ai.GenerateOption{
		ai.WithModelName(a.modelName),
		ai.WithSystem(a.systemPrompt),
		ai.WithMessages(messages...),
		ai.WithTools(a.toolRefs...),
		ai.WithMaxTurns(a.maxTurns),
	}
	if callback != nil {
		opts = append(opts, ai.WithStreaming(ai.ModelStreamCallback(callback)))
	}

	a.logger.Debug("executing assistant turn",
		"tools", a.toolNames,
		"historyMessages", len(history),
		"queryLength", len(input),
	)

	resp, err := genkit.Generate(ctx, a.g, opts...)
	if err != nil {
		return nil, fmt.Errorf("generating response: %w", err)
	}

	finalText := resp.Text()
	if strings.TrimSpace(finalText) == "" && len(resp.ToolRequests()) == 0 {
		a.logger.Warn("model returned empty response with no tool requests")
		finalText = FallbackMessage
	}

	return &Response{
		FinalText:    finalText,
		ToolRequests: turnToolRequests(resp),
		History:      append(messages, ai.NewModelMessage(ai.NewTextPart(finalText))),
	}, nil
}

// turnToolRequests collects every tool request the model made during the
// turn. The agentic loop resolves tool calls in intermediate rounds, so the
// final message alone usually carries none; the interim model messages are
// appended to the request transcript and hold them.
func turnToolRequests(resp *ai.ModelResponse) []*ai.ToolRequest {
	var requests []*ai.ToolRequest
	if resp.Request != nil {
		for _, msg := range resp.Request.Messages {
			if msg.Role != ai.RoleModel {
				continue
			}
			for _, part := range msg.Content {
				if part.IsToolRequest() {
					requests = append(requests, part.ToolRequest)
				}
			}
		}
	}
	return append(requests, resp.ToolRequests()...)
}
