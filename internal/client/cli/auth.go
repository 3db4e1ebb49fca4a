package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/snackswap/snackswap/internal/client/api"
	"github.com/snackswap/snackswap/internal/client/state"
)

// getSimpleText, getPassword and getConfirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirm = GetConfirm

// Register collects the registration form and asks the server to send a
// verification code to the given email. The form is kept in memory so that
// the user can finish with 'verify' (or ask for another code with 'resend').
func (a *App) Register(ctx context.Context) error {
	form := api.SignupForm{}
	var err error

	if form.Name, err = getSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if form.Username, err = getSimpleText(a.reader, "Username", os.Stdout); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Campus email", os.Stdout); err != nil {
		return err
	}
	if form.Hostel, err = getSimpleText(a.reader, "Hostel", os.Stdout); err != nil {
		return err
	}
	if form.Room, err = getSimpleText(a.reader, "Room number", os.Stdout); err != nil {
		return err
	}
	if form.Phone, err = getSimpleText(a.reader, "Phone", os.Stdout); err != nil {
		return err
	}
	if form.Password, err = getPassword(os.Stdout, "Password"); err != nil {
		return err
	}
	if form.ConfirmPassword, err = getPassword(os.Stdout, "Confirm password"); err != nil {
		return err
	}

	if err := a.client.SignupStart(ctx, form); err != nil {
		reportErr(err)
		return err
	}

	a.signup = state.NewSignupFlow(form, a.config.ResendCooldown, a.config.OTPCountdown)
	printlnFn(fmt.Sprintf("A verification code was sent to %s. Type 'verify' once it arrives.", form.Email))
	return nil
}

// Verify finishes a pending registration with the emailed code and logs
// the new account in.
func (a *App) Verify(ctx context.Context) error {
	if a.signup == nil {
		printlnFn("No registration in progress. Type 'register' first.")
		return nil
	}

	remaining := a.signup.Timer.Remaining()
	if remaining <= 0 {
		printlnFn("The code has expired. Type 'resend' to get a new one.")
		return nil
	}

	code, err := getSimpleText(a.reader, fmt.Sprintf("Verification code (expires in %s)", remaining.Round(time.Second)), os.Stdout)
	if err != nil {
		return err
	}

	form := a.signup.Form
	form.Code = code
	user, err := a.client.SignupComplete(ctx, form)
	if err != nil {
		reportErr(err)
		return err
	}

	a.signup = nil
	a.startSession(ctx, user)
	printlnFn(fmt.Sprintf("Welcome to snackswap, %s!", user.Name))
	return nil
}

// Resend asks the server for a fresh registration code, respecting the
// resend cooldown.
func (a *App) Resend(ctx context.Context) error {
	if a.signup == nil {
		printlnFn("No registration in progress. Type 'register' first.")
		return nil
	}

	if ok, wait := a.signup.Timer.CanResend(); !ok {
		printlnFn(fmt.Sprintf("Please wait %s before requesting another code.", wait.Round(time.Second)))
		return nil
	}

	if err := a.client.SignupResend(ctx, a.signup.Form.Email); err != nil {
		reportErr(err)
		return err
	}

	a.signup.Timer.Sent()
	printlnFn("A new code is on its way.")
	return nil
}

// Login authenticates with an email or username plus password and starts
// the session on success.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Email or username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Password")
	if err != nil {
		return err
	}

	user, err := a.client.Login(ctx, identifier, password)
	if err != nil {
		reportErr(err)
		return err
	}

	a.startSession(ctx, user)
	printlnFn(fmt.Sprintf("Logged in as %s.", user.Username))
	return nil
}

// Forgot starts the password reset flow by mailing a one-time code to the
// given address.
func (a *App) Forgot(ctx context.Context) error {
	if a.reset != nil {
		if ok, wait := a.reset.Timer.CanResend(); !ok {
			printlnFn(fmt.Sprintf("Please wait %s before requesting another code.", wait.Round(time.Second)))
			return nil
		}
	}

	email, err := getSimpleText(a.reader, "Account email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.ForgotPassword(ctx, email); err != nil {
		reportErr(err)
		return err
	}

	a.reset = state.NewResetFlow(email, a.config.ResendCooldown, a.config.OTPCountdown)
	printlnFn(fmt.Sprintf("A reset code was sent to %s. Type 'reset' once it arrives.", email))
	return nil
}

// Reset verifies the emailed reset code and, on success, sets a new
// password for the account.
func (a *App) Reset(ctx context.Context) error {
	if a.reset == nil {
		printlnFn("No reset in progress. Type 'forgot' first.")
		return nil
	}

	if !a.reset.Verified {
		remaining := a.reset.Timer.Remaining()
		if remaining <= 0 {
			printlnFn("The code has expired. Type 'forgot' to get a new one.")
			return nil
		}

		otp, err := getSimpleText(a.reader, fmt.Sprintf("Reset code (expires in %s)", remaining.Round(time.Second)), os.Stdout)
		if err != nil {
			return err
		}
		if err := a.client.VerifyResetOTP(ctx, a.reset.Email, otp); err != nil {
			reportErr(err)
			return err
		}
		a.reset.Verified = true
	}

	password, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}
	if password != confirm {
		printlnFn("Passwords do not match.")
		return nil
	}

	if err := a.client.ResetPassword(ctx, a.reset.Email, password); err != nil {
		reportErr(err)
		return err
	}

	a.reset = nil
	printlnFn("Password updated. You can log in now.")
	return nil
}

// Logout invalidates the refresh token server-side, clears local tokens and
// stops the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		reportErr(err)
	}
	a.endSession()
	printlnFn("Logged out.")
	return nil
}
