package messages

import (
	"context"
	"fmt"

	"github.com/snackswap/snackswap/internal/dbx"
	"github.com/snackswap/snackswap/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query := `
		INSERT INTO messages (swap_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, msg.SwapID, msg.SenderID, msg.Body).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	msg.Read = false
	return msg, nil
}

func (r *PostgresRepository) ListBySwap(ctx context.Context, swapID string) ([]*models.Message, error) {
	query := `
		SELECT id, swap_id, sender_id, body, read, created_at
		FROM messages
		WHERE swap_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, swapID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		err := rows.Scan(&msg.ID, &msg.SwapID, &msg.SenderID, &msg.Body, &msg.Read, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, swapID string, readerID string) (int64, error) {
	query := `
		UPDATE messages
		SET read = TRUE
		WHERE swap_id = $1 AND sender_id <> $2 AND read = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, swapID, readerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN swaps s ON s.id = m.swap_id
		WHERE (s.owner_id = $1 OR s.requester_id = $1)
		  AND m.sender_id <> $1
		  AND m.read = FALSE
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
