// Package mcp serves the product's business tools over the Model Context
// Protocol, so external agent hosts (Claude Desktop, editors, other MCP
// clients) can query the same mock subscription and team data the embedded
// assistant uses.
package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/acmesaas/assistant/internal/log"
	"github.com/acmesaas/assistant/internal/product"
	"github.com/acmesaas/assistant/internal/tools"
)

// Server wraps the MCP SDK server around the product record store.
type Server struct {
	mcpServer *mcp.Server
	store     *product.Store
	logger    log.Logger
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	Store   *product.Store
	Logger  log.Logger
}

// NewServer creates a new MCP server with both product tools registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("product store is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		store:  cfg.Store,
		logger: cfg.Logger,
	}

	if err := s.registerSubscriptionTool(); err != nil {
		return nil, fmt.Errorf("registering %s: %w", tools.ToolSubscriptionInfo, err)
	}
	if err := s.registerTeamTool(); err != nil {
		return nil, fmt.Errorf("registering %s: %w", tools.ToolTeamMembers, err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport. Blocking; handles all
// protocol communication until the context is canceled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

// SubscriptionInput defines the input schema for get_subscription_info.
type SubscriptionInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Optional user ID. If not provided, uses the current session user."`
}

// TeamInput defines the input schema for get_team_members.
type TeamInput struct {
	RoleFilter       string `json:"role_filter,omitempty" jsonschema:"Optional filter by role (admin, member, viewer)"`
	DepartmentFilter string `json:"department_filter,omitempty" jsonschema:"Optional filter by department name"`
	IncludeInactive  bool   `json:"include_inactive,omitempty" jsonschema:"Whether to include deactivated members (default: false)"`
}

func (s *Server) registerSubscriptionTool() error {
	inputSchema, err := jsonschema.For[SubscriptionInput](nil)
	if err != nil {
		return fmt.Errorf("creating input schema: %w", err)
	}

	tool := &mcp.Tool{
		Name: tools.ToolSubscriptionInfo,
		Description: "Get information about the current user's subscription plan: " +
			"plan name and status, seat usage and limits, billing cycle and renewal date, and included features.",
		InputSchema: inputSchema,
	}

	mcp.AddTool(s.mcpServer, tool, func(_ context.Context, _ *mcp.CallToolRequest, in SubscriptionInput) (*mcp.CallToolResult, any, error) {
		s.logger.Debug("MCP tool invoked", "tool", tools.ToolSubscriptionInfo)
		text := product.FormatSubscription(s.store.Subscription(), in.UserID)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	})

	return nil
}

func (s *Server) registerTeamTool() error {
	inputSchema, err := jsonschema.For[TeamInput](nil)
	if err != nil {
		return fmt.Errorf("creating input schema: %w", err)
	}

	tool := &mcp.Tool{
		Name: tools.ToolTeamMembers,
		Description: "Get information about team members in the organization, " +
			"with optional filters by role or department.",
		InputSchema: inputSchema,
	}

	mcp.AddTool(s.mcpServer, tool, func(_ context.Context, _ *mcp.CallToolRequest, in TeamInput) (*mcp.CallToolResult, any, error) {
		s.logger.Debug("MCP tool invoked", "tool", tools.ToolTeamMembers,
			"role_filter", in.RoleFilter, "department_filter", in.DepartmentFilter)
		members := product.FilterMembers(s.store.Members(), in.RoleFilter, in.DepartmentFilter, in.IncludeInactive)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: product.FormatMembers(members)}},
		}, nil, nil
	})

	return nil
}
