package assistant

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/mcp"

	"github.com/acmesaas/assistant/internal/log"
)

// docsServerName identifies the hosted documentation-search server within
// the MCP host.
const docsServerName = "docs"

// docsRequestTimeout bounds each HTTP request to the docs server. The
// streamable transport holds the response open while results stream, so
// this is generous compared to a plain API call.
const docsRequestTimeout = 120 * time.Second

// DocsConfig describes the hosted documentation-search MCP server.
type DocsConfig struct {
	ServerURL string // streamable-HTTP endpoint
	APIKey    string // bearer token
}

// DocsTools connects to the documentation-search server over the MCP
// streamable-HTTP transport and returns the tools it advertises. The server
// is an opaque capability provider: it may expose zero or more named tools,
// all of which are registered with Genkit and handed to the assistant
// unchanged.
func DocsTools(ctx context.Context, g *genkit.Genkit, cfg DocsConfig, logger log.Logger) ([]ai.Tool, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("docs server URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("docs API key is required")
	}

	host, err := mcp.NewMCPHost(g, mcp.MCPHostOptions{
		Name:    "acme-assistant",
		Version: "1.0.0",
		MCPServers: []mcp.MCPServerConfig{
			{
				Name: docsServerName,
				Config: mcp.MCPClientOptions{
					Name: docsServerName,
					StreamableHTTP: &mcp.StreamableHTTPConfig{
						BaseURL: cfg.ServerURL,
						HTTPClient: &http.Client{
							Transport: &bearerTransport{token: cfg.APIKey},
							Timeout:   docsRequestTimeout,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to docs server: %w", err)
	}

	tools, err := host.GetActiveTools(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("discovering docs tools: %w", err)
	}

	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name()
	}
	logger.Info("loaded docs tools", "server", cfg.ServerURL, "count", len(tools), "tools", names)

	return tools, nil
}

// bearerTransport injects the docs API key as a bearer token on every
// request. The MCP client owns the rest of the wire protocol.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	// Per RoundTripper contract the request must not be mutated.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return base.RoundTrip(clone)
}
