package product

import (
	"fmt"
	"time"
)

// Store is a read-only provider of the demo records. It is constructed once
// at startup and injected into the tool layer, keeping the formatters pure
// and independently testable. All accessors are safe for concurrent use
// because nothing mutates after construction.
type Store struct {
	subscription Subscription
	members      []Member
}

// NewStore builds a Store populated with the demo fixture: a Pro plan
// renewing 45 days out and a nine-person roster. Last-active timestamps are
// derived from the construction time so the demo always looks current.
func NewStore() *Store {
	now := time.Now()
	stamp := func(d time.Duration) string {
		return now.Add(-d).Format("2006-01-02 15:04")
	}

	return &Store{
		subscription: Subscription{
			PlanName:         "Pro",
			Status:           "active",
			SeatsUsed:        8,
			SeatsTotal:       10,
			BillingCycle:     "annual",
			CurrentPeriodEnd: now.AddDate(0, 0, 45),
			MonthlyPrice:     49.99,
			Features: []string{
				"Unlimited projects",
				"Advanced analytics",
				"Priority support",
				"Custom integrations",
				"API access",
				"SSO authentication",
			},
		},
		members: []Member{
			{ID: "usr_001", Name: "Sarah Chen", Email: "sarah.chen@acme.com", Role: RoleAdmin, Department: "Engineering", JoinedDate: "2023-01-15", LastActive: stamp(2 * time.Hour), Status: StatusActive},
			{ID: "usr_002", Name: "Marcus Johnson", Email: "marcus.j@acme.com", Role: RoleAdmin, Department: "Product", JoinedDate: "2023-02-20", LastActive: stamp(5 * time.Hour), Status: StatusActive},
			{ID: "usr_003", Name: "Emily Rodriguez", Email: "emily.r@acme.com", Role: RoleMember, Department: "Engineering", JoinedDate: "2023-04-10", LastActive: stamp(24 * time.Hour), Status: StatusActive},
			{ID: "usr_004", Name: "James Wilson", Email: "james.w@acme.com", Role: RoleMember, Department: "Design", JoinedDate: "2023-06-05", LastActive: stamp(12 * time.Hour), Status: StatusActive},
			{ID: "usr_005", Name: "Priya Patel", Email: "priya.p@acme.com", Role: RoleMember, Department: "Engineering", JoinedDate: "2023-08-22", LastActive: stamp(1 * time.Hour), Status: StatusActive},
			{ID: "usr_006", Name: "Alex Kim", Email: "alex.k@acme.com", Role: RoleViewer, Department: "Marketing", JoinedDate: "2023-10-01", LastActive: stamp(72 * time.Hour), Status: StatusActive},
			{ID: "usr_007", Name: "Jordan Lee", Email: "jordan.l@acme.com", Role: RoleMember, Department: "Sales", JoinedDate: "2024-01-08", LastActive: stamp(8 * time.Hour), Status: StatusActive},
			{ID: "usr_008", Name: "Taylor Swift", Email: "taylor.s@acme.com", Role: RoleViewer, Department: "Finance", JoinedDate: "2024-03-15", LastActive: "N/A", Status: StatusInvited},
			{ID: "usr_009", Name: "Nina Petrova", Email: "nina.p@acme.com", Role: RoleMember, Department: "Engineering", JoinedDate: "2023-03-02", LastActive: stamp(90 * 24 * time.Hour), Status: StatusDeactivated},
		},
	}
}

// NewStoreWith builds a Store from explicit records. Test constructor.
// Returns an error if the records violate the store invariants.
func NewStoreWith(sub Subscription, members []Member) (*Store, error) {
	if sub.SeatsUsed < 0 || sub.SeatsTotal <= 0 || sub.SeatsUsed > sub.SeatsTotal {
		return nil, fmt.Errorf("invalid seat counts: %d used of %d total", sub.SeatsUsed, sub.SeatsTotal)
	}
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("duplicate member id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return &Store{subscription: sub, members: append([]Member(nil), members...)}, nil
}

// Subscription returns the workspace subscription record.
func (s *Store) Subscription() Subscription {
	return s.subscription
}

// Members returns a copy of the team roster in fixture order.
// The copy keeps callers from mutating the shared backing slice.
func (s *Store) Members() []Member {
	return append([]Member(nil), s.members...)
}
