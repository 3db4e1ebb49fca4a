package models

import "time"

// VerificationCode is an ephemeral signup code keyed by email. Consumed
// (deleted) when signup completes; otherwise it ages out past ExpiresAt.
type VerificationCode struct {
	ID        string
	Email     string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ResetOTP is a password-reset code. Verified guards against replay: a code
// verifies once, and the reset that follows deletes the row.
type ResetOTP struct {
	ID        string
	Email     string
	OTP       string
	Verified  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
