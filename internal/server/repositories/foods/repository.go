// Package foods declares the repository contract for food listings.
package foods

import (
	"context"

	"github.com/snackswap/snackswap/internal/server/models"
)

// Filter narrows the catalog listing. Search is a case-insensitive
// substring over name OR description; Category is an exact match. Empty
// values mean "no filter".
type Filter struct {
	Search   string
	Category string
}

// Repository defines persistence operations for listings.
type Repository interface {
	// Create inserts a listing and returns it with the generated id.
	Create(ctx context.Context, food *models.Food) (*models.Food, error)

	// GetByID returns a listing, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Food, error)

	// ListAvailable returns available listings joined with their owners,
	// newest first, filtered per f.
	ListAvailable(ctx context.Context, f Filter) ([]*models.FoodWithOwner, error)

	// Update applies the owner-editable fields.
	Update(ctx context.Context, id string, upd models.FoodUpdate) error

	// Delete removes a listing.
	Delete(ctx context.Context, id string) error
}
