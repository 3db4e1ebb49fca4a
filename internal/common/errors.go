// Package common defines shared constants and sentinel errors used across
// client and server layers of snackswap. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Auth errors.
	ErrInvalidToken         = errors.New("invalid token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrUsernameNotFound     = errors.New("username not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotConfirmed    = errors.New("email not confirmed")
	ErrEmailNotFound        = errors.New("email not found")
	ErrCodeInvalidOrExpired = errors.New("invalid or expired code")

	// Swap lifecycle errors.
	ErrSelfRequest    = errors.New("cannot request own listing")
	ErrNotPending     = errors.New("swap is not pending")
	ErrNotOwner       = errors.New("not the listing owner")
	ErrNotParticipant = errors.New("not a participant of this swap")
)
