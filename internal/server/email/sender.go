// Package email delivers one-time codes through a hosted email-delivery API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Templates the sender knows how to render.
const (
	TemplateSignupCode = "signup_code"
	TemplateResetOTP   = "reset_otp"
)

type Sender interface {
	// SendCode delivers a one-time code to the address using the named
	// template.
	SendCode(ctx context.Context, to string, template string, code string) error
}

// HTTPSender posts JSON to an email-delivery API endpoint authenticated by an
// API key.
type HTTPSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPSender(endpoint string, apiKey string) *HTTPSender {
	return &HTTPSender{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	To       string `json:"to"`
	Template string `json:"template"`
	Code     string `json:"code"`
}

func (s *HTTPSender) SendCode(ctx context.Context, to string, template string, code string) error {
	body, err := json.Marshal(sendRequest{To: to, Template: template, Code: code})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/v1/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email api status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
