// Package swaps declares the repository contract for swap requests.
package swaps

import (
	"context"

	"github.com/snackswap/snackswap/internal/server/models"
)

// Repository defines persistence operations for swap requests.
type Repository interface {
	// Create inserts a pending swap and returns it with the generated id.
	Create(ctx context.Context, swap *models.Swap) (*models.Swap, error)

	// GetByID returns a swap, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Swap, error)

	// UpdateStatus moves a pending swap to accepted or declined. Returns
	// common.ErrNotPending when the swap is absent or already terminal.
	UpdateStatus(ctx context.Context, id string, status string) error

	// ListReceived returns swaps owned by userID, joined with the listing
	// and the requester, newest first.
	ListReceived(ctx context.Context, userID string) ([]*models.SwapWithDetails, error)

	// ListSent returns swaps requested by userID, joined with the listing
	// and the owner, newest first.
	ListSent(ctx context.Context, userID string) ([]*models.SwapWithDetails, error)
}
