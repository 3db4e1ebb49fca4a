// Package refreshtokens persists the opaque refresh tokens paired with JWT
// access tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/snackswap/snackswap/internal/server/models"
)

type Repository interface {
	// Create inserts a refresh token for userID expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Find returns the row for the token string, or common.ErrNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete removes a token row. Rotation deletes before reissuing.
	Delete(ctx context.Context, token string) error
}
