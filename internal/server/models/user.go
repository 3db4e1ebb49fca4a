// Package models defines the database rows the server persists and the
// joined shapes the API returns.
package models

import "time"

// User is a profile row plus the credential the auth API checks. Rating
// defaults to 5.0 and Points to 0 at signup completion.
type User struct {
	ID             string
	Username       string
	Email          string
	Name           string
	Hostel         string
	RoomNumber     string
	Phone          string
	Rating         float64
	Points         int
	NotifEmail     bool
	NotifApp       bool
	NotifPromo     bool
	PasswordHash   string
	EmailConfirmed bool
	CreatedAt      time.Time
}

// UserSummary is the owner/requester shape joined into listings and swaps.
type UserSummary struct {
	ID         string
	Username   string
	Name       string
	Hostel     string
	RoomNumber string
	Rating     float64
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name       string
	Username   string
	Email      string
	Hostel     string
	RoomNumber string
	Phone      string
}

// NotificationPrefs carries the three preference toggles.
type NotificationPrefs struct {
	NotifEmail bool
	NotifApp   bool
	NotifPromo bool
}
