package models

import "time"

// RefreshToken is an opaque token exchanged for a fresh token pair.
// Rotation deletes the used row.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}
