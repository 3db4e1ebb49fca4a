// Package users declares the server-side repository contract for profile
// and credential rows.
package users

import (
	"context"

	"github.com/snackswap/snackswap/internal/server/models"
)

// Repository defines persistence operations for users.
type Repository interface {
	// Create inserts a new user (profile + credential) and returns it with
	// the generated id. Duplicate username/email map to common.ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername returns the user with the given username, or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UsernameExists reports whether the username is already taken.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// UpdateProfile applies the editable profile fields.
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) error

	// UpdatePreferences applies the notification toggles.
	UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPrefs) error

	// UpdatePassword sets a new credential hash (the privileged set-password
	// path used by the OTP reset and password change flows).
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
