package models

import "time"

// Food statuses. Listings stay available until edited or deleted; swap
// acceptance does not close them.
const (
	FoodStatusAvailable = "available"
)

// Food is a shareable listing. Price nil means free; SwapFor nil means the
// owner did not list swap preferences.
type Food struct {
	ID             string
	UserID         string
	FoodName       string
	Quantity       string
	Description    string
	Category       string
	Price          *float64
	SwapFor        []string
	ImageURL       *string
	PickupLocation string
	AvailableUntil *time.Time
	Status         string
	CreatedAt      time.Time
}

// FoodWithOwner is the catalog shape: the listing joined with its owner.
type FoodWithOwner struct {
	Food
	Owner UserSummary
}

// FoodUpdate carries the owner-editable listing fields.
type FoodUpdate struct {
	FoodName    string
	Description string
	Category    string
	Quantity    string
	Price       *float64
}

// FoodSummary is the listing shape joined into swap views.
type FoodSummary struct {
	ID       string
	FoodName string
	ImageURL *string
	Category string
}
