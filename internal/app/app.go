// Package app provides application initialization and dependency wiring.
//
// App is the container that assembles Genkit, the product record store, the
// tool layer, the docs-server connection, and the assistant. Components are
// constructed explicitly in Setup and torn down in Close.
package app

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/acmesaas/assistant/internal/assistant"
	"github.com/acmesaas/assistant/internal/config"
	"github.com/acmesaas/assistant/internal/log"
	"github.com/acmesaas/assistant/internal/product"
)

// App is the application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit    *genkit.Genkit
	Store     *product.Store
	Tools     []ai.Tool // product tools plus discovered docs tools
	Assistant *assistant.Assistant

	otelCleanup func()
}

// Close releases application resources. Safe to call after a failed Setup.
func (a *App) Close() error {
	if a.Logger != nil {
		a.Logger.Info("shutting down application")
	}
	if a.otelCleanup != nil {
		a.otelCleanup()
	}
	return nil
}
