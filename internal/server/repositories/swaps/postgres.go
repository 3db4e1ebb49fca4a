package swaps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/snackswap/snackswap/internal/common"
	"github.com/snackswap/snackswap/internal/dbx"
	"github.com/snackswap/snackswap/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, swap *models.Swap) (*models.Swap, error) {
	query := `
		INSERT INTO swaps (food_id, requester_id, owner_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		swap.FoodID, swap.RequesterID, swap.OwnerID, models.SwapStatusPending,
	).Scan(&swap.ID, &swap.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	swap.Status = models.SwapStatusPending
	return swap, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Swap, error) {
	query := `
		SELECT id, food_id, requester_id, owner_id, status, created_at
		FROM swaps
		WHERE id = $1
	`

	swap := &models.Swap{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&swap.ID, &swap.FoodID, &swap.RequesterID, &swap.OwnerID, &swap.Status, &swap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return swap, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	// The pending guard keeps terminal states terminal even when two
	// transitions race.
	query := `
		UPDATE swaps
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	res, err := r.db.ExecContext(ctx, query, status, id, models.SwapStatusPending)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotPending
	}
	return nil
}

const detailColumns = `
		s.id, s.food_id, s.requester_id, s.owner_id, s.status, s.created_at,
		f.id, f.food_name, f.image_url, f.category,
		u.id, u.username, u.name, u.hostel, u.room_number, u.rating`

func (r *PostgresRepository) queryDetails(ctx context.Context, query string, arg string) ([]*models.SwapWithDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SwapWithDetails
	for rows.Next() {
		item := &models.SwapWithDetails{}
		err := rows.Scan(
			&item.ID, &item.FoodID, &item.RequesterID, &item.OwnerID, &item.Status, &item.CreatedAt,
			&item.Food.ID, &item.Food.FoodName, &item.Food.ImageURL, &item.Food.Category,
			&item.Counterparty.ID, &item.Counterparty.Username, &item.Counterparty.Name,
			&item.Counterparty.Hostel, &item.Counterparty.RoomNumber, &item.Counterparty.Rating,
		)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListReceived(ctx context.Context, userID string) ([]*models.SwapWithDetails, error) {
	query := `
		SELECT` + detailColumns + `
		FROM swaps s
		JOIN foods f ON f.id = s.food_id
		JOIN users u ON u.id = s.requester_id
		WHERE s.owner_id = $1
		ORDER BY s.created_at DESC
	`
	return r.queryDetails(ctx, query, userID)
}

func (r *PostgresRepository) ListSent(ctx context.Context, userID string) ([]*models.SwapWithDetails, error) {
	query := `
		SELECT` + detailColumns + `
		FROM swaps s
		JOIN foods f ON f.id = s.food_id
		JOIN users u ON u.id = s.owner_id
		WHERE s.requester_id = $1
		ORDER BY s.created_at DESC
	`
	return r.queryDetails(ctx, query, userID)
}
