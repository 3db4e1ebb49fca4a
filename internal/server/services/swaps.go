package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/snackswap/snackswap/internal/common"
	"github.com/snackswap/snackswap/internal/dbx"
	"github.com/snackswap/snackswap/internal/server/models"
	"github.com/snackswap/snackswap/internal/server/repositories/repomanager"
)

// Notifier pushes an event to a user's realtime connections. Delivery is
// best effort; a user with no open connection misses the push and catches
// up on the next fetch.
type Notifier interface {
	Publish(userID string, event any)
}

// Event names pushed over the realtime channel.
const (
	EventSwapCreated = "swap_created"
	EventSwapUpdated = "swap_updated"
	EventNewMessage  = "new_message"
)

// Event is the envelope pushed to realtime subscribers.
type Event struct {
	Type   string `json:"type"`
	SwapID string `json:"swap_id"`
}

type SwapService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    Notifier
}

func NewSwapService(db *sql.DB, m repomanager.RepositoryManager, notifier Notifier) *SwapService {
	return &SwapService{db: db, repomanager: m, notifier: notifier}
}

func (s *SwapService) notify(userID string, eventType string, swapID string) {
	if s.notifier != nil {
		s.notifier.Publish(userID, Event{Type: eventType, SwapID: swapID})
	}
}

// Request creates a pending swap for the listing plus the opening chat
// message, in one transaction. Owners cannot request their own listings.
func (s *SwapService) Request(ctx context.Context, requesterID string, foodID string) (*models.Swap, error) {
	food, err := s.repomanager.Foods(s.db).GetByID(ctx, foodID)
	if err != nil {
		return nil, err
	}

	if food.UserID == requesterID {
		return nil, common.ErrSelfRequest
	}

	var swap *models.Swap
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		swap, err = s.repomanager.Swaps(tx).Create(ctx, &models.Swap{
			FoodID:      foodID,
			RequesterID: requesterID,
			OwnerID:     food.UserID,
		})
		if err != nil {
			return err
		}

		opening := fmt.Sprintf("Hi! I'm interested in your %s. Is it still available?", food.FoodName)
		_, err = s.repomanager.Messages(tx).Create(ctx, &models.Message{
			SwapID:   swap.ID,
			SenderID: requesterID,
			Body:     opening,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(food.UserID, EventSwapCreated, swap.ID)
	return swap, nil
}

// Respond accepts or declines a pending swap. Only the listing owner may
// respond, and only while the swap is still pending.
func (s *SwapService) Respond(ctx context.Context, userID string, swapID string, accept bool) error {
	repo := s.repomanager.Swaps(s.db)

	swap, err := repo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}
	if swap.OwnerID != userID {
		return common.ErrNotOwner
	}

	status := models.SwapStatusDeclined
	if accept {
		status = models.SwapStatusAccepted
	}

	if err := repo.UpdateStatus(ctx, swapID, status); err != nil {
		return err
	}

	s.notify(swap.RequesterID, EventSwapUpdated, swapID)
	return nil
}

// ListReceived returns swaps on the user's listings, newest first.
func (s *SwapService) ListReceived(ctx context.Context, userID string) ([]*models.SwapWithDetails, error) {
	return s.repomanager.Swaps(s.db).ListReceived(ctx, userID)
}

// ListSent returns swaps the user requested, newest first.
func (s *SwapService) ListSent(ctx context.Context, userID string) ([]*models.SwapWithDetails, error) {
	return s.repomanager.Swaps(s.db).ListSent(ctx, userID)
}

func (s *SwapService) participantSwap(ctx context.Context, db dbx.DBTX, userID string, swapID string) (*models.Swap, error) {
	swap, err := s.repomanager.Swaps(db).GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if swap.OwnerID != userID && swap.RequesterID != userID {
		return nil, common.ErrNotParticipant
	}
	return swap, nil
}

// OpenThread returns the swap's chat oldest first and marks the messages the
// viewer did not send as read.
func (s *SwapService) OpenThread(ctx context.Context, userID string, swapID string) ([]*models.Message, error) {
	if _, err := s.participantSwap(ctx, s.db, userID, swapID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Messages(s.db)
	if _, err := repo.MarkRead(ctx, swapID, userID); err != nil {
		return nil, err
	}

	return repo.ListBySwap(ctx, swapID)
}

// SendMessage appends a chat message to a swap the sender participates in
// and pings the other participant.
func (s *SwapService) SendMessage(ctx context.Context, userID string, swapID string, body string) (*models.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: empty message", common.ErrInternal)
	}

	swap, err := s.participantSwap(ctx, s.db, userID, swapID)
	if err != nil {
		return nil, err
	}

	msg, err := s.repomanager.Messages(s.db).Create(ctx, &models.Message{
		SwapID:   swapID,
		SenderID: userID,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}

	other := swap.OwnerID
	if userID == swap.OwnerID {
		other = swap.RequesterID
	}
	s.notify(other, EventNewMessage, swapID)

	return msg, nil
}

// UnreadCount counts unread messages addressed to the user across all their
// swaps. Drives the inbox badge.
func (s *SwapService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repomanager.Messages(s.db).CountUnread(ctx, userID)
}
