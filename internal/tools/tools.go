// Package tools exposes the product's mock business data as Genkit tools.
//
// Each tool is a thin adapter: the argument structs define the schema the
// model sees, and the handlers delegate to the pure formatters in the
// product package. Handlers have no side effects beyond returning text, so
// concurrent invocations need no coordination.
package tools

import (
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/acmesaas/assistant/internal/log"
	"github.com/acmesaas/assistant/internal/product"
)

// Tool names registered with Genkit. Kept as constants so the system prompt
// and tests reference a single source of truth.
const (
	ToolSubscriptionInfo = "get_subscription_info"
	ToolTeamMembers      = "get_team_members"
)

// SubscriptionInput defines input for the get_subscription_info tool.
type SubscriptionInput struct {
	UserID string `json:"user_id,omitempty" jsonschema_description:"Optional user ID. If not provided, uses the current session user."`
}

// TeamInput defines input for the get_team_members tool.
type TeamInput struct {
	RoleFilter       string `json:"role_filter,omitempty" jsonschema_description:"Optional filter by role (admin, member, viewer)"`
	DepartmentFilter string `json:"department_filter,omitempty" jsonschema_description:"Optional filter by department name"`
	IncludeInactive  bool   `json:"include_inactive,omitempty" jsonschema_description:"Whether to include deactivated members (default: false)"`
}

// Product wraps the record store and serves both tool handlers.
type Product struct {
	store  *product.Store
	logger log.Logger
}

// NewProduct creates the product toolset with its required dependencies.
func NewProduct(store *product.Store, logger log.Logger) (*Product, error) {
	if store == nil {
		return nil, fmt.Errorf("product store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Product{store: store, logger: logger}, nil
}

// SubscriptionInfo returns the formatted subscription record. It always
// succeeds: the backing record is a fixed singleton.
func (p *Product) SubscriptionInfo(_ *ai.ToolContext, in SubscriptionInput) (string, error) {
	p.logger.Debug("tool invoked", "tool", ToolSubscriptionInfo, "user_id", in.UserID)
	return product.FormatSubscription(p.store.Subscription(), in.UserID), nil
}

// TeamMembers filters and formats the team roster. Unknown filter values
// eliminate all candidates and produce the fixed no-results message rather
// than an error.
func (p *Product) TeamMembers(_ *ai.ToolContext, in TeamInput) (string, error) {
	p.logger.Debug("tool invoked",
		"tool", ToolTeamMembers,
		"role_filter", in.RoleFilter,
		"department_filter", in.DepartmentFilter,
		"include_inactive", in.IncludeInactive)

	members := product.FilterMembers(p.store.Members(), in.RoleFilter, in.DepartmentFilter, in.IncludeInactive)
	return product.FormatMembers(members), nil
}

// Register registers both product tools with Genkit and returns their
// references for the assistant's toolset.
func Register(g *genkit.Genkit, p *Product) ([]ai.Tool, error) {
	if g == nil {
		return nil, fmt.Errorf("genkit instance is required")
	}
	if p == nil {
		return nil, fmt.Errorf("product toolset is required")
	}

	subscription := genkit.DefineTool(g, ToolSubscriptionInfo,
		"Get information about the current user's subscription plan: plan name and status, "+
			"seat usage and limits, billing cycle and renewal date, and included features. "+
			"Use this when users ask about their subscription, billing, plan features, or seat availability.",
		p.SubscriptionInfo)

	team := genkit.DefineTool(g, ToolTeamMembers,
		"Get information about team members in the organization, with optional filters by role "+
			"or department. Use this when users ask who is on their team, about roles and permissions, "+
			"department assignments, recent activity, or pending invitations.",
		p.TeamMembers)

	return []ai.Tool{subscription, team}, nil
}
