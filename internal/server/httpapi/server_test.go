package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/snackswap/snackswap/internal/logging"
	"github.com/snackswap/snackswap/internal/server/auth"
	"github.com/snackswap/snackswap/internal/server/config"
	"github.com/snackswap/snackswap/internal/server/realtime"
	"github.com/snackswap/snackswap/internal/server/repositories/repomanager"
	"github.com/snackswap/snackswap/internal/server/services"
)

type stubSender struct{}

func (stubSender) SendCode(ctx context.Context, to, template, code string) error { return nil }

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		OTPValidityDuration:          10 * time.Minute,
	}
	rm := &repomanager.PostgresRepositoryManager{}
	logger := logging.NewNopLogger()
	hub := realtime.NewHub(logger)

	srv := NewServer(
		services.NewUserService(db, rm, stubSender{}, cfg),
		services.NewFoodService(db, rm, cfg),
		services.NewSwapService(db, rm, hub),
		hub,
		[]byte(cfg.SecretKey),
		logger,
	)
	return srv, mock, db
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	srv, _, db := newTestServer(t)
	defer db.Close()

	resp := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/profile", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.Code)
	}
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	srv, _, db := newTestServer(t)
	defer db.Close()

	resp := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/profile", "Token abc", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.Code)
	}
}

func userRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "name", "hostel", "room_number", "phone",
		"rating", "points", "notif_email", "notif_app", "notif_promo",
		"password_hash", "email_confirmed", "created_at",
	})
}

func TestGetProfile_Success(t *testing.T) {
	srv, mock, db := newTestServer(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(userRow().AddRow(
			"u-1", "asha_k", "asha@campus.edu", "Asha", "Hostel B", "214", "9876543210",
			4.5, 120, true, true, false, "hash", true, time.Now(),
		))

	resp := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/profile", bearerToken(t, "u-1"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out userResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.Username != "asha_k" || out.Points != 120 {
		t.Fatalf("unexpected profile: %+v", out)
	}
}

func TestLogin_Success(t *testing.T) {
	srv, mock, db := newTestServer(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("asha@campus.edu").
		WillReturnRows(userRow().AddRow(
			"u-1", "asha_k", "asha@campus.edu", "Asha", "Hostel B", "214", "9876543210",
			5.0, 0, true, true, false, string(hash), true, time.Now(),
		))
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"identifier": "Asha@campus.edu",
		"password":   "hunter22",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Fatalf("empty tokens: %s", resp.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	srv, mock, db := newTestServer(t)
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	mock.ExpectQuery(`(?s)SELECT.+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("asha_k").
		WillReturnRows(userRow().AddRow(
			"u-1", "asha_k", "asha@campus.edu", "Asha", "Hostel B", "214", "9876543210",
			5.0, 0, true, true, false, string(hash), true, time.Now(),
		))

	resp := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"identifier": "asha_k",
		"password":   "wrong",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.Code)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	srv, mock, db := newTestServer(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("ghost_user").
		WillReturnRows(userRow())

	resp := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"identifier": "ghost_user",
		"password":   "whatever",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "username not found") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestCreateSwap_SelfRequest(t *testing.T) {
	srv, mock, db := newTestServer(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT.+FROM\s+foods\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("f-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "food_name", "quantity", "description", "category",
			"price", "swap_for", "image_url", "pickup_location", "available_until",
			"status", "created_at",
		}).AddRow(
			"f-1", "u-1", "Maggi", "2 packs", "", "Snacks",
			nil, "{}", nil, "Hostel A lobby", nil,
			"available", time.Now(),
		))

	resp := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/swaps", bearerToken(t, "u-1"), map[string]string{
		"food_id": "f-1",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUnreadCount_Success(t *testing.T) {
	srv, mock, db := newTestServer(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+COUNT.+FROM\s+messages\s+m`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	resp := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/inbox/unread", bearerToken(t, "u-1"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Unread int `json:"unread"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.Unread != 3 {
		t.Fatalf("want 3 unread, got %d", out.Unread)
	}
}
