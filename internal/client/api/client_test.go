package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 2*time.Second)
}

func TestLogin_StoresTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user":          map[string]any{"id": "u-1", "username": "asha_k"},
			"access_token":  "acc-1",
			"refresh_token": "ref-1",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	user, err := c.Login(context.Background(), "asha_k", "hunter22")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !c.LoggedIn() {
		t.Fatal("tokens not stored")
	}
}

func TestDo_RefreshesOnceOn401(t *testing.T) {
	var profileCalls, refreshCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/profile":
			profileCalls++
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"id": "u-1", "username": "asha_k"})
		case "/api/v1/auth/refresh":
			refreshCalls++
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["refresh_token"] != "ref-1" {
				t.Errorf("unexpected refresh token %q", req["refresh_token"])
			}
			json.NewEncoder(w).Encode(map[string]string{
				"access_token":  "fresh",
				"refresh_token": "ref-2",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.SetTokens("stale", "ref-1")

	user, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	if user.Username != "asha_k" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if refreshCalls != 1 || profileCalls != 2 {
		t.Fatalf("want 1 refresh and 2 profile calls, got %d and %d", refreshCalls, profileCalls)
	}
}

func TestDo_RefreshFailureClearsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "refresh token expired"})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.SetTokens("stale", "ref-1")

	_, err := c.Profile(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("want 401 APIError, got %v", err)
	}
	if c.LoggedIn() {
		t.Fatal("tokens should be cleared after failed refresh")
	}
}

func TestSignupStart_ValidationErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string]string{"username": "Username is required"},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	err := c.SignupStart(context.Background(), SignupForm{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsValidation() {
		t.Fatalf("want validation APIError, got %v", err)
	}
	if apiErr.Fields["username"] != "Username is required" {
		t.Fatalf("unexpected fields: %v", apiErr.Fields)
	}
}

func TestListFoods_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "maggi" {
			t.Errorf("search param = %q", got)
		}
		if got := r.URL.Query().Get("category"); got != "Snacks" {
			t.Errorf("category param = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"foods": []any{}})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.SetTokens("acc", "ref")
	if _, err := c.ListFoods(context.Background(), "maggi", "Snacks"); err != nil {
		t.Fatalf("ListFoods error: %v", err)
	}
}

func TestLogout_ClearsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.SetTokens("acc", "ref")
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if c.LoggedIn() {
		t.Fatal("tokens not cleared")
	}
}
