package foods

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

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

func (r *PostgresRepository) Create(ctx context.Context, food *models.Food) (*models.Food, error) {
	query := `
		INSERT INTO foods (user_id, food_name, quantity, description, category,
			price, swap_for, image_url, pickup_location, available_until, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		food.UserID, food.FoodName, food.Quantity, food.Description, food.Category,
		food.Price, pq.Array(food.SwapFor), food.ImageURL, food.PickupLocation,
		food.AvailableUntil, models.FoodStatusAvailable,
	).Scan(&food.ID, &food.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	food.Status = models.FoodStatusAvailable
	return food, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Food, error) {
	query := `
		SELECT id, user_id, food_name, quantity, description, category,
			price, swap_for, image_url, pickup_location, available_until, status, created_at
		FROM foods
		WHERE id = $1
	`

	food := &models.Food{}
	var swapFor pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&food.ID, &food.UserID, &food.FoodName, &food.Quantity, &food.Description,
		&food.Category, &food.Price, &swapFor, &food.ImageURL,
		&food.PickupLocation, &food.AvailableUntil, &food.Status, &food.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	food.SwapFor = swapFor
	return food, nil
}

func (r *PostgresRepository) ListAvailable(ctx context.Context, f Filter) ([]*models.FoodWithOwner, error) {
	query := `
		SELECT f.id, f.user_id, f.food_name, f.quantity, f.description, f.category,
			f.price, f.swap_for, f.image_url, f.pickup_location, f.available_until,
			f.status, f.created_at,
			u.id, u.username, u.name, u.hostel, u.room_number, u.rating
		FROM foods f
		JOIN users u ON u.id = f.user_id
		WHERE f.status = $1
	`
	args := []any{models.FoodStatusAvailable}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (f.food_name ILIKE $%d OR f.description ILIKE $%d)", len(args), len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND f.category = $%d", len(args))
	}
	query += " ORDER BY f.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.FoodWithOwner
	for rows.Next() {
		item := &models.FoodWithOwner{}
		var swapFor pq.StringArray
		err := rows.Scan(
			&item.ID, &item.UserID, &item.FoodName, &item.Quantity, &item.Description,
			&item.Category, &item.Price, &swapFor, &item.ImageURL,
			&item.PickupLocation, &item.AvailableUntil, &item.Status, &item.CreatedAt,
			&item.Owner.ID, &item.Owner.Username, &item.Owner.Name,
			&item.Owner.Hostel, &item.Owner.RoomNumber, &item.Owner.Rating,
		)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.SwapFor = swapFor
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, upd models.FoodUpdate) error {
	query := `
		UPDATE foods
		SET food_name = $1, description = $2, category = $3, quantity = $4, price = $5
		WHERE id = $6
	`

	res, err := r.db.ExecContext(ctx, query,
		upd.FoodName, upd.Description, upd.Category, upd.Quantity, upd.Price, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM foods WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
