package api

import "time"

// User mirrors the profile shape the API returns.
type User struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Hostel     string  `json:"hostel"`
	RoomNumber string  `json:"room_number"`
	Phone      string  `json:"phone"`
	Rating     float64 `json:"rating"`
	Points     int     `json:"points"`
	NotifEmail bool    `json:"notif_email"`
	NotifApp   bool    `json:"notif_app"`
	NotifPromo bool    `json:"notif_promo"`
}

// Owner is the counterparty/owner summary joined into listings and swaps.
type Owner struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Hostel     string  `json:"hostel"`
	RoomNumber string  `json:"room_number"`
	Rating     float64 `json:"rating"`
}

// Food is one catalog listing.
type Food struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	FoodName       string     `json:"food_name"`
	Quantity       string     `json:"quantity"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Price          *float64   `json:"price"`
	SwapFor        []string   `json:"swap_for"`
	ImageURL       *string    `json:"image_url"`
	PickupLocation string     `json:"pickup_location"`
	AvailableUntil *time.Time `json:"available_until"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// FoodWithOwner joins a listing with its owner for the catalog view.
type FoodWithOwner struct {
	Food
	Owner Owner `json:"owner"`
}

// FoodSummary is the listing shape embedded in swap rows.
type FoodSummary struct {
	ID       string  `json:"id"`
	FoodName string  `json:"food_name"`
	ImageURL *string `json:"image_url"`
	Category string  `json:"category"`
}

// Swap is one swap request.
type Swap struct {
	ID          string    `json:"id"`
	FoodID      string    `json:"food_id"`
	RequesterID string    `json:"requester_id"`
	OwnerID     string    `json:"owner_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SwapWithDetails joins a swap with its listing and counterparty.
type SwapWithDetails struct {
	Swap
	Food         FoodSummary `json:"food"`
	Counterparty Owner       `json:"counterparty"`
}

// Message is one chat line on a swap thread.
type Message struct {
	ID        string    `json:"id"`
	SwapID    string    `json:"swap_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is the envelope pushed over the realtime channel.
type Event struct {
	Type   string `json:"type"`
	SwapID string `json:"swap_id"`
}

// SignupForm carries the registration fields.
type SignupForm struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Hostel          string `json:"hostel"`
	Room            string `json:"room"`
	Phone           string `json:"phone"`
	Code            string `json:"code,omitempty"`
}

// FoodForm carries the fields for creating a listing.
type FoodForm struct {
	FoodName       string     `json:"food_name"`
	Quantity       string     `json:"quantity"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Price          *float64   `json:"price"`
	SwapFor        []string   `json:"swap_for"`
	PickupLocation string     `json:"pickup_location"`
	AvailableUntil *time.Time `json:"available_until"`
	ImageKey       string     `json:"image_key,omitempty"`
}

// FoodUpdateForm carries the editable listing fields.
type FoodUpdateForm struct {
	FoodName    string   `json:"food_name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Quantity    string   `json:"quantity"`
	Price       *float64 `json:"price"`
}

// ProfileForm carries the editable profile fields.
type ProfileForm struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Hostel     string `json:"hostel"`
	RoomNumber string `json:"room_number"`
	Phone      string `json:"phone"`
}

// PreferencesForm carries the notification toggles.
type PreferencesForm struct {
	NotifEmail bool `json:"notif_email"`
	NotifApp   bool `json:"notif_app"`
	NotifPromo bool `json:"notif_promo"`
}
