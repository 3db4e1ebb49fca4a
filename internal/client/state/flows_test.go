package state

import (
	"testing"
	"time"

	"github.com/snackswap/snackswap/internal/client/api"
)

func withFrozenClock(t *testing.T) *time.Time {
	t.Helper()
	current := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return current }
	t.Cleanup(func() { now = orig })
	return &current
}

func TestCodeTimer_CooldownGatesResend(t *testing.T) {
	clock := withFrozenClock(t)

	timer := NewCodeTimer(60*time.Second, 600*time.Second)
	timer.Sent()

	ok, wait := timer.CanResend()
	if ok {
		t.Fatal("resend allowed immediately after send")
	}
	if wait != 60*time.Second {
		t.Fatalf("want 60s wait, got %v", wait)
	}

	*clock = clock.Add(59 * time.Second)
	if ok, _ := timer.CanResend(); ok {
		t.Fatal("resend allowed before cooldown elapsed")
	}

	*clock = clock.Add(2 * time.Second)
	if ok, _ := timer.CanResend(); !ok {
		t.Fatal("resend blocked after cooldown elapsed")
	}
}

func TestCodeTimer_Remaining(t *testing.T) {
	clock := withFrozenClock(t)

	timer := NewCodeTimer(60*time.Second, 600*time.Second)
	timer.Sent()

	if got := timer.Remaining(); got != 600*time.Second {
		t.Fatalf("want 600s, got %v", got)
	}

	*clock = clock.Add(10 * time.Minute)
	if got := timer.Remaining(); got != 0 {
		t.Fatalf("want 0 after expiry, got %v", got)
	}
}

func TestCodeTimer_NeverSent(t *testing.T) {
	timer := NewCodeTimer(60*time.Second, 600*time.Second)

	if ok, _ := timer.CanResend(); !ok {
		t.Fatal("fresh timer should allow sending")
	}
	if timer.Remaining() != 0 {
		t.Fatal("fresh timer should report no remaining validity")
	}
}

func TestNewSignupFlow_StartsTimer(t *testing.T) {
	withFrozenClock(t)

	f := NewSignupFlow(api.SignupForm{Email: "a@b.com"}, 60*time.Second, 600*time.Second)
	if ok, _ := f.Timer.CanResend(); ok {
		t.Fatal("timer should start on flow creation")
	}
	if f.Form.Email != "a@b.com" {
		t.Fatalf("form not kept: %+v", f.Form)
	}
}
