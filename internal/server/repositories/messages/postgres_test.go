package messages

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

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

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("m-1", time.Now())
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+messages`).
		WithArgs("s-1", "u-2", "Is it still available?").
		WillReturnRows(rows)

	msg := &models.Message{SwapID: "s-1", SenderID: "u-2", Body: "Is it still available?"}
	got, err := repo.Create(context.Background(), msg)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "m-1" || got.Read {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestListBySwap_OldestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "swap_id", "sender_id", "body", "read", "created_at"}).
		AddRow("m-1", "s-1", "u-2", "first", true, time.Now().Add(-time.Minute)).
		AddRow("m-2", "s-1", "u-1", "second", false, time.Now())
	mock.ExpectQuery(`(?s)FROM\s+messages\s+WHERE\s+swap_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+ASC`).
		WithArgs("s-1").
		WillReturnRows(rows)

	got, err := repo.ListBySwap(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("ListBySwap error: %v", err)
	}
	if len(got) != 2 || got[0].Body != "first" {
		t.Fatalf("unexpected thread: %+v", got)
	}
}

func TestMarkRead_SkipsOwnMessages(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+messages\s+SET\s+read\s*=\s*TRUE.+sender_id\s*<>\s*\$2`).
		WithArgs("s-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkRead(context.Background(), "s-1", "u-1")
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 rows flipped, got %d", n)
	}
}

func TestCountUnread(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(4)
	mock.ExpectQuery(`(?s)SELECT\s+COUNT.+JOIN\s+swaps\s+s\s+ON\s+s\.id\s*=\s*m\.swap_id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.CountUnread(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CountUnread error: %v", err)
	}
	if got != 4 {
		t.Fatalf("want 4, got %d", got)
	}
}
