package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/firebase/genkit/go/core/tracing"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/acmesaas/assistant/internal/assistant"
	"github.com/acmesaas/assistant/internal/config"
	"github.com/acmesaas/assistant/internal/log"
	"github.com/acmesaas/assistant/internal/product"
	"github.com/acmesaas/assistant/internal/tools"
)

// Setup creates and initializes the application. On error everything
// already initialized is cleaned up; otherwise the caller owns Close.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	a.otelCleanup = provideOtelShutdown(ctx, cfg, logger)

	g, err := provideGenkit(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	a.Store = product.NewStore()

	productTools, err := tools.NewProduct(a.Store, logger.With("component", "tools"))
	if err != nil {
		return nil, fmt.Errorf("creating product tools: %w", err)
	}
	registered, err := tools.Register(g, productTools)
	if err != nil {
		return nil, fmt.Errorf("registering product tools: %w", err)
	}
	a.Tools = registered

	docsTools, err := assistant.DocsTools(ctx, g, assistant.DocsConfig{
		ServerURL: cfg.Docs.ServerURL,
		APIKey:    cfg.Docs.APIKey,
	}, logger.With("component", "docs"))
	if err != nil {
		return nil, fmt.Errorf("connecting docs server: %w", err)
	}
	a.Tools = append(a.Tools, docsTools...)

	asst, err := assistant.New(assistant.Config{
		Genkit:      g,
		Logger:      logger.With("component", "assistant"),
		Tools:       a.Tools,
		ModelName:   cfg.FullModelName(),
		ProductName: cfg.ProductName,
		MaxTurns:    cfg.MaxTurns,
	})
	if err != nil {
		return nil, fmt.Errorf("creating assistant: %w", err)
	}
	a.Assistant = asst

	return a, nil
}

// provideGenkit initializes Genkit with the configured AI provider.
// Supports openai (default) and googleai. Call ordering in Setup ensures
// tracing is configured before Genkit starts emitting spans.
func provideGenkit(ctx context.Context, cfg *config.Config, logger log.Logger) (*genkit.Genkit, error) {
	var g *genkit.Genkit

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with googleai provider")
		}
	default: // openai
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
	}

	logger.Info("initialized genkit", "provider", cfg.Provider, "model", cfg.ModelName)
	return g, nil
}

// provideOtelShutdown wires an OTLP HTTP exporter into Genkit's
// TracerProvider so the agent loop and tool calls are traced. Tracing is
// disabled when no collector endpoint is configured; the returned cleanup
// flushes remaining spans.
func provideOtelShutdown(ctx context.Context, cfg *config.Config, logger log.Logger) func() {
	tel := cfg.Telemetry
	if tel.OTLPEndpoint == "" {
		return func() {}
	}

	// Genkit's TracerProvider reads service identity from the OTEL env
	// vars. Setup runs before any goroutines are spawned, so os.Setenv is
	// safe here.
	if tel.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", tel.ServiceName)
	}
	if tel.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+tel.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(tel.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("creating OTLP exporter, tracing disabled", "error", err)
		return func() {}
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("tracing enabled",
		"endpoint", tel.OTLPEndpoint,
		"service", tel.ServiceName,
		"environment", tel.Environment,
	)

	shutdown := tracing.TracerProvider().Shutdown

	//nolint:contextcheck // independent context: shutdown runs during teardown when parent is canceled
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down tracer provider", "error", err)
		}
	}
}
