// Package messages persists swap chat threads.
package messages

import (
	"context"

	"github.com/snackswap/snackswap/internal/server/models"
)

type Repository interface {
	// Create appends a message to a swap thread.
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	// ListBySwap returns a thread oldest first.
	ListBySwap(ctx context.Context, swapID string) ([]*models.Message, error)
	// MarkRead marks every unread message on the thread that the reader did
	// not send. Returns how many rows flipped.
	MarkRead(ctx context.Context, swapID string, readerID string) (int64, error)
	// CountUnread counts unread messages across every swap the user
	// participates in, excluding the user's own messages.
	CountUnread(ctx context.Context, userID string) (int, error)
}
