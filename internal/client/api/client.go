// Package api is the typed HTTP client for the snackswap backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/snackswap/snackswap/internal/common"
)

// Client talks to the backend JSON API. It holds the token pair and
// transparently retries one request after a refresh when the access token
// has aged out.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokens stores a token pair after login or signup.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// ClearTokens drops the stored pair.
func (c *Client) ClearTokens() {
	c.SetTokens("", "")
}

// LoggedIn reports whether the client holds an access token.
func (c *Client) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

func (c *Client) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
		apiErr.Fields = body.Errors
	}
	return apiErr
}

// do sends the request with the current access token, refreshing the pair
// once on a 401 before giving up. out, when non-nil, receives the decoded
// 2xx body.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if access, _ := c.tokens(); access != "" {
		req.Header.Set(common.AuthTokenHeaderName, "Bearer "+access)
	}
	return c.http.Do(req)
}

// refresh exchanges the stored refresh token for a fresh pair.
func (c *Client) refresh(ctx context.Context) error {
	_, refreshToken := c.tokens()
	if refreshToken == "" {
		return &APIError{Status: http.StatusUnauthorized, Message: "not logged in"}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/auth/refresh",
		map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.ClearTokens()
		return decodeError(resp)
	}

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// --- auth ---

type authResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *Client) SignupStart(ctx context.Context, form SignupForm) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/signup/start", form, nil)
}

func (c *Client) SignupResend(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/signup/resend", map[string]string{"email": email}, nil)
}

func (c *Client) SignupComplete(ctx context.Context, form SignupForm) (*User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signup/complete", form, &out); err != nil {
		return nil, err
	}
	c.SetTokens(out.AccessToken, out.RefreshToken)
	return &out.User, nil
}

func (c *Client) Login(ctx context.Context, identifier, password string) (*User, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"identifier": identifier, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	c.SetTokens(out.AccessToken, out.RefreshToken)
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, refreshToken := c.tokens()
	defer c.ClearTokens()
	if refreshToken == "" {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout",
		map[string]string{"refresh_token": refreshToken}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) VerifyResetOTP(ctx context.Context, email, otp string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/verify-otp",
		map[string]string{"email": email, "otp": otp}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/reset-password",
		map[string]string{"email": email, "new_password": newPassword}, nil)
}

// --- profile ---

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, form ProfileForm) error {
	return c.do(ctx, http.MethodPut, "/api/v1/profile", form, nil)
}

func (c *Client) UpdatePreferences(ctx context.Context, form PreferencesForm) error {
	return c.do(ctx, http.MethodPut, "/api/v1/profile/preferences", form, nil)
}

func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/profile/password",
		map[string]string{"current_password": current, "new_password": newPassword}, nil)
}

// --- foods ---

func (c *Client) ListFoods(ctx context.Context, search, category string) ([]FoodWithOwner, error) {
	path := "/api/v1/foods"
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Foods []FoodWithOwner `json:"foods"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Foods, nil
}

func (c *Client) CreateFood(ctx context.Context, form FoodForm) (*Food, error) {
	var out Food
	if err := c.do(ctx, http.MethodPost, "/api/v1/foods", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetFood(ctx context.Context, id string) (*Food, error) {
	var out Food
	if err := c.do(ctx, http.MethodGet, "/api/v1/foods/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFood(ctx context.Context, id string, form FoodUpdateForm) error {
	return c.do(ctx, http.MethodPut, "/api/v1/foods/"+id, form, nil)
}

func (c *Client) DeleteFood(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/foods/"+id, nil, nil)
}

// PresignUpload asks the server for an upload slot: the object key plus a
// presigned PUT URL.
func (c *Client) PresignUpload(ctx context.Context) (key string, uploadURL string, err error) {
	var out struct {
		Key       string `json:"key"`
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/uploads", nil, &out); err != nil {
		return "", "", err
	}
	return out.Key, out.UploadURL, nil
}

// UploadImage PUTs raw image bytes to a presigned URL. The URL already
// carries its own authorization.
func (c *Client) UploadImage(ctx context.Context, uploadURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	return nil
}

// --- swaps and inbox ---

func (c *Client) CreateSwap(ctx context.Context, foodID string) (*Swap, error) {
	var out Swap
	if err := c.do(ctx, http.MethodPost, "/api/v1/swaps", map[string]string{"food_id": foodID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RespondSwap(ctx context.Context, swapID string, accept bool) error {
	return c.do(ctx, http.MethodPost, "/api/v1/swaps/"+swapID+"/respond",
		map[string]bool{"accept": accept}, nil)
}

func (c *Client) ListReceived(ctx context.Context) ([]SwapWithDetails, error) {
	var out struct {
		Swaps []SwapWithDetails `json:"swaps"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/swaps/received", nil, &out); err != nil {
		return nil, err
	}
	return out.Swaps, nil
}

func (c *Client) ListSent(ctx context.Context) ([]SwapWithDetails, error) {
	var out struct {
		Swaps []SwapWithDetails `json:"swaps"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/swaps/sent", nil, &out); err != nil {
		return nil, err
	}
	return out.Swaps, nil
}

// OpenThread fetches the chat for a swap; the server marks the other side's
// messages read as part of the fetch.
func (c *Client) OpenThread(ctx context.Context, swapID string) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/swaps/"+swapID+"/messages", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) SendMessage(ctx context.Context, swapID, body string) (*Message, error) {
	var out Message
	if err := c.do(ctx, http.MethodPost, "/api/v1/swaps/"+swapID+"/messages",
		map[string]string{"body": body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Unread int `json:"unread"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/inbox/unread", nil, &out); err != nil {
		return 0, err
	}
	return out.Unread, nil
}

// DialEvents opens the realtime websocket. The caller owns the returned
// connection.
func (c *Client) DialEvents(ctx context.Context) (*websocket.Conn, error) {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/api/v1/inbox/ws"

	access, _ := c.tokens()
	header := http.Header{}
	if access != "" {
		header.Set(common.AuthTokenHeaderName, "Bearer "+access)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	return conn, err
}
