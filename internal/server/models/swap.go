package models

import "time"

// Swap statuses. pending is the only non-terminal state.
const (
	SwapStatusPending  = "pending"
	SwapStatusAccepted = "accepted"
	SwapStatusDeclined = "declined"
)

// Swap is one user's request for another user's listing.
// Invariant: RequesterID != OwnerID.
type Swap struct {
	ID          string
	FoodID      string
	RequesterID string
	OwnerID     string
	Status      string
	CreatedAt   time.Time
}

// SwapWithDetails joins a swap with its listing and the counterparty:
// the requester on received views, the owner on sent views.
type SwapWithDetails struct {
	Swap
	Food         FoodSummary
	Counterparty UserSummary
}
