// Package state tracks multi-step client flows that span several REPL
// commands: signup with its emailed code, password reset with its OTP, and
// pending delete confirmations.
package state

import (
	"time"

	"github.com/snackswap/snackswap/internal/client/api"
)

// now is a test seam.
var now = time.Now

// CodeTimer tracks one emailed code: when it was sent, how long it stays
// valid, and how soon a resend is allowed.
type CodeTimer struct {
	sentAt    time.Time
	cooldown  time.Duration
	countdown time.Duration
}

func NewCodeTimer(cooldown, countdown time.Duration) *CodeTimer {
	return &CodeTimer{cooldown: cooldown, countdown: countdown}
}

// Sent records that a code went out now.
func (t *CodeTimer) Sent() {
	t.sentAt = now()
}

// CanResend reports whether the cooldown has passed, and if not, how long
// remains.
func (t *CodeTimer) CanResend() (bool, time.Duration) {
	if t.sentAt.IsZero() {
		return true, 0
	}
	elapsed := now().Sub(t.sentAt)
	if elapsed >= t.cooldown {
		return true, 0
	}
	return false, t.cooldown - elapsed
}

// Remaining returns how long the current code is still valid; zero when it
// has expired or none was sent.
func (t *CodeTimer) Remaining() time.Duration {
	if t.sentAt.IsZero() {
		return 0
	}
	left := t.countdown - now().Sub(t.sentAt)
	if left < 0 {
		return 0
	}
	return left
}

// SignupFlow is a registration between the start and complete steps: the
// validated form plus the emailed-code timer.
type SignupFlow struct {
	Form  api.SignupForm
	Timer *CodeTimer
}

func NewSignupFlow(form api.SignupForm, cooldown, countdown time.Duration) *SignupFlow {
	f := &SignupFlow{Form: form, Timer: NewCodeTimer(cooldown, countdown)}
	f.Timer.Sent()
	return f
}

// ResetFlow is a password reset in progress.
type ResetFlow struct {
	Email    string
	Verified bool
	Timer    *CodeTimer
}

func NewResetFlow(email string, cooldown, countdown time.Duration) *ResetFlow {
	f := &ResetFlow{Email: email, Timer: NewCodeTimer(cooldown, countdown)}
	f.Timer.Sent()
	return f
}

// DeleteTarget is a listing queued for deletion pending the user's
// confirmation.
type DeleteTarget struct {
	FoodID   string
	FoodName string
}
