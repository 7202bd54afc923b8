package product

import (
	"fmt"
	"strings"
)

// NoMembersMessage is returned by FormatMembers when no records survive
// the filters. A fixed string so the model (and tests) can recognize it.
const NoMembersMessage = "No team members found matching the specified criteria."

// FormatSubscription renders a subscription record as a markdown block.
// The user identifier is accepted but unused: the demo serves a single
// workspace, and the parameter is reserved for a future multi-tenant
// lookup. It never fails.
func FormatSubscription(sub Subscription, _ string) string {
	var b strings.Builder

	b.WriteString("## Subscription Information\n\n")
	fmt.Fprintf(&b, "**Plan:** %s\n", sub.PlanName)
	fmt.Fprintf(&b, "**Status:** %s\n\n", capitalize(sub.Status))

	b.WriteString("### Usage\n")
	fmt.Fprintf(&b, "- **Seats:** %d / %d used\n", sub.SeatsUsed, sub.SeatsTotal)
	fmt.Fprintf(&b, "- **Available seats:** %d\n\n", sub.SeatsAvailable())

	b.WriteString("### Billing\n")
	fmt.Fprintf(&b, "- **Cycle:** %s\n", capitalize(sub.BillingCycle))
	fmt.Fprintf(&b, "- **Price:** $%.2f/month ($%.2f/year)\n", sub.MonthlyPrice, sub.AnnualPrice())
	fmt.Fprintf(&b, "- **Current period ends:** %s\n\n", sub.CurrentPeriodEnd.Format("2006-01-02"))

	b.WriteString("### Included Features\n")
	for _, feature := range sub.Features {
		fmt.Fprintf(&b, "- %s\n", feature)
	}

	return b.String()
}

// FilterMembers applies the role, department, and active-only predicates as
// three independent passes and returns the survivors in original order.
//
//   - role: case-insensitive exact match against the role field; empty skips.
//   - department: case-insensitive substring match; empty skips.
//   - includeInactive: when false, deactivated members are excluded.
//
// An unknown role or department value simply matches nothing; filtering
// never errors.
func FilterMembers(members []Member, role, department string, includeInactive bool) []Member {
	out := members

	if role != "" {
		out = keep(out, func(m Member) bool {
			return strings.EqualFold(m.Role, role)
		})
	}
	if department != "" {
		out = keep(out, func(m Member) bool {
			return strings.Contains(strings.ToLower(m.Department), strings.ToLower(department))
		})
	}
	if !includeInactive {
		out = keep(out, func(m Member) bool {
			return m.Status != StatusDeactivated
		})
	}

	return out
}

// FormatMembers renders a roster as a markdown block, partitioned into
// Admins, Members, and Viewers sections. Each member appears in at most one
// section matching its role field exactly, and relative order within a
// section follows the input order. A record with an unrecognized role is
// counted in the total but listed in no section. Empty input yields
// NoMembersMessage.
func FormatMembers(members []Member) string {
	if len(members) == 0 {
		return NoMembersMessage
	}

	var admins, regulars, viewers []Member
	for _, m := range members {
		switch m.Role {
		case RoleAdmin:
			admins = append(admins, m)
		case RoleMember:
			regulars = append(regulars, m)
		case RoleViewer:
			viewers = append(viewers, m)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Team Members (%d total)\n\n", len(members))
	writeSection(&b, "Admins", admins)
	writeSection(&b, "Members", regulars)
	writeSection(&b, "Viewers", viewers)

	invited := 0
	for _, m := range members {
		if m.Status == StatusInvited {
			invited++
		}
	}
	if invited > 0 {
		fmt.Fprintf(&b, "\n*%d pending invitation(s)*", invited)
	}

	return b.String()
}

func writeSection(b *strings.Builder, heading string, members []Member) {
	if len(members) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n", heading)
	for i, m := range members {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "  - **%s** (%s) %s\n    %s · Last active: %s", m.Name, m.Email, statusGlyph(m.Status), m.Department, m.LastActive)
	}
	b.WriteString("\n\n")
}

// statusGlyph maps a member status to its display glyph: done for active,
// pending for invited, blocked for anything else.
func statusGlyph(status string) string {
	switch status {
	case StatusActive:
		return "✓"
	case StatusInvited:
		return "⏳"
	default:
		return "✗"
	}
}

func keep(members []Member, pred func(Member) bool) []Member {
	var out []Member
	for _, m := range members {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
