package foods

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/snackswap/snackswap/internal/common"
	"github.com/snackswap/snackswap/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func listColumns() []string {
	return []string{
		"id", "user_id", "food_name", "quantity", "description", "category",
		"price", "swap_for", "image_url", "pickup_location", "available_until",
		"status", "created_at",
		"owner_id", "username", "name", "hostel", "room_number", "rating",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("f-1", time.Now())
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+foods`).
		WillReturnRows(rows)

	price := 20.0
	food := &models.Food{
		UserID:   "u-1",
		FoodName: "Maggi",
		Category: "Snacks",
		Price:    &price,
		SwapFor:  []string{"chips", "juice"},
	}
	got, err := repo.Create(context.Background(), food)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "f-1" || got.Status != models.FoodStatusAvailable {
		t.Fatalf("unexpected food: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+foods\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestListAvailable_NoFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(listColumns()).
		AddRow("f-1", "u-1", "Maggi", "2 packs", "spicy", "Snacks",
			nil, "{chips}", nil, "Hostel A lobby", nil,
			"available", time.Now(),
			"u-1", "alice", "Alice", "HostelA", "7", 5.0)

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+foods\s+f\s+JOIN\s+users\s+u.+WHERE\s+f\.status\s*=\s*\$1\s+ORDER\s+BY`).
		WithArgs("available").
		WillReturnRows(rows)

	got, err := repo.ListAvailable(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("ListAvailable error: %v", err)
	}
	if len(got) != 1 || got[0].FoodName != "Maggi" || got[0].Owner.Username != "alice" {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if got[0].Price != nil {
		t.Fatalf("expected free listing, got price %v", *got[0].Price)
	}
	if len(got[0].SwapFor) != 1 || got[0].SwapFor[0] != "chips" {
		t.Fatalf("unexpected swap_for: %v", got[0].SwapFor)
	}
}

func TestListAvailable_SearchAndCategory(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)AND\s+\(f\.food_name\s+ILIKE\s+\$2\s+OR\s+f\.description\s+ILIKE\s+\$2\)\s+AND\s+f\.category\s*=\s*\$3`).
		WithArgs("available", "%magg%", "Snacks").
		WillReturnRows(sqlmock.NewRows(listColumns()))

	got, err := repo.ListAvailable(context.Background(), Filter{Search: "magg", Category: "Snacks"})
	if err != nil {
		t.Fatalf("ListAvailable error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+foods`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "ghost", models.FoodUpdate{FoodName: "x", Category: "Meals"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+foods\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("f-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "f-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
