package tools

import (
	"strings"
	"testing"

	"github.com/acmesaas/assistant/internal/log"
	"github.com/acmesaas/assistant/internal/product"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(product.NewStore(), log.NewNop())
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func TestNewProductValidation(t *testing.T) {
	if _, err := NewProduct(nil, log.NewNop()); err == nil {
		t.Error("NewProduct(nil store) did not fail")
	}
	if _, err := NewProduct(product.NewStore(), nil); err == nil {
		t.Error("NewProduct(nil logger) did not fail")
	}
}

func TestSubscriptionInfo(t *testing.T) {
	p := newTestProduct(t)

	out, err := p.SubscriptionInfo(nil, SubscriptionInput{UserID: "usr_001"})
	if err != nil {
		t.Fatalf("SubscriptionInfo: %v", err)
	}
	for _, want := range []string{
		"## Subscription Information",
		"**Plan:** Pro",
		"- **Seats:** 8 / 10 used",
		"- **Available seats:** 2",
		"- **Price:** $49.99/month ($599.88/year)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The user ID is optional; omitting it serves the session workspace.
	out2, err := p.SubscriptionInfo(nil, SubscriptionInput{})
	if err != nil {
		t.Fatalf("SubscriptionInfo: %v", err)
	}
	if out2 != out {
		t.Error("subscription output differs with and without user ID")
	}
}

func TestTeamMembers(t *testing.T) {
	p := newTestProduct(t)

	tests := []struct {
		name         string
		in           TeamInput
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "unfiltered roster",
			in:           TeamInput{},
			wantContains: []string{"## Team Members (8 total)", "### Admins", "### Members", "### Viewers", "*1 pending invitation(s)*"},
			wantAbsent:   []string{"Nina Petrova"},
		},
		{
			name:         "engineering team",
			in:           TeamInput{DepartmentFilter: "Engineering"},
			wantContains: []string{"### Admins", "Sarah Chen", "### Members", "Emily Rodriguez", "Priya Patel"},
			wantAbsent:   []string{"Nina Petrova", "### Viewers"},
		},
		{
			name:         "engineering members",
			in:           TeamInput{RoleFilter: "member", DepartmentFilter: "engineering"},
			wantContains: []string{"Emily Rodriguez", "Priya Patel"},
			wantAbsent:   []string{"Sarah Chen", "### Admins", "Nina Petrova"},
		},
		{
			name:         "viewers only",
			in:           TeamInput{RoleFilter: "viewer"},
			wantContains: []string{"## Team Members (2 total)", "Alex Kim", "Taylor Swift"},
			wantAbsent:   []string{"### Admins", "### Members\n"},
		},
		{
			name:         "include inactive",
			in:           TeamInput{DepartmentFilter: "engineering", IncludeInactive: true},
			wantContains: []string{"Nina Petrova", "✗"},
		},
		{
			name:         "no matches",
			in:           TeamInput{RoleFilter: "admin", DepartmentFilter: "finance"},
			wantContains: []string{product.NoMembersMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := p.TeamMembers(nil, tt.in)
			if err != nil {
				t.Fatalf("TeamMembers: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(out, absent) {
					t.Errorf("output unexpectedly contains %q:\n%s", absent, out)
				}
			}
		})
	}
}
