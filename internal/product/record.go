// Package product holds the mock business records the assistant's internal
// tools answer from, together with the pure filtering and formatting logic
// that turns them into text.
//
// In a real deployment these records would come from the product's billing
// and user-management APIs. Here they are fixed demo fixtures: constructed
// once, never mutated, safe for concurrent reads without locking.
package product

import "time"

// Member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// Member statuses.
const (
	StatusActive      = "active"
	StatusInvited     = "invited"
	StatusDeactivated = "deactivated"
)

// Subscription describes the current workspace's subscription plan.
// Invariant: SeatsUsed <= SeatsTotal.
type Subscription struct {
	PlanName         string
	Status           string
	SeatsUsed        int
	SeatsTotal       int
	BillingCycle     string // "monthly" or "annual"
	CurrentPeriodEnd time.Time
	MonthlyPrice     float64 // USD
	Features         []string
}

// SeatsAvailable returns the number of unassigned seats.
func (s Subscription) SeatsAvailable() int {
	return s.SeatsTotal - s.SeatsUsed
}

// AnnualPrice returns the annualized price (monthly price x 12).
func (s Subscription) AnnualPrice() float64 {
	return s.MonthlyPrice * 12
}

// Member describes a single team member.
// Invariant: ID is unique within a roster.
type Member struct {
	ID         string
	Name       string
	Email      string
	Role       string // admin, member, viewer
	Department string
	JoinedDate string // YYYY-MM-DD
	LastActive string // "YYYY-MM-DD HH:MM" or "N/A" for invited members
	Status     string // active, invited, deactivated
}
