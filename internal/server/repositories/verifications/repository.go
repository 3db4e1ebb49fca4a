// Package verifications persists the two kinds of one-time codes: email
// verification codes for signup and password reset OTPs.
package verifications

import (
	"context"
	"time"

	"github.com/snackswap/snackswap/internal/server/models"
)

type Repository interface {
	// CreateEmailCode stores a signup code for the address.
	CreateEmailCode(ctx context.Context, email string, code string, validity time.Duration) error
	// FindEmailCode returns the unexpired code row matching email and code,
	// or common.ErrCodeInvalidOrExpired.
	FindEmailCode(ctx context.Context, email string, code string) (*models.VerificationCode, error)
	// DeleteEmailCodes removes every code issued to the address.
	DeleteEmailCodes(ctx context.Context, email string) error

	// CreateResetOTP stores a reset code for the address.
	CreateResetOTP(ctx context.Context, email string, otp string, validity time.Duration) error
	// FindResetOTP returns the newest unverified unexpired OTP matching email
	// and code, or common.ErrCodeInvalidOrExpired.
	FindResetOTP(ctx context.Context, email string, otp string) (*models.ResetOTP, error)
	// MarkResetOTPVerified flips an OTP row to verified.
	MarkResetOTPVerified(ctx context.Context, id string) error
	// FindVerifiedResetOTP returns the newest verified unexpired OTP for the
	// address, or common.ErrCodeInvalidOrExpired.
	FindVerifiedResetOTP(ctx context.Context, email string) (*models.ResetOTP, error)
	// DeleteResetOTP removes a consumed OTP row.
	DeleteResetOTP(ctx context.Context, id string) error
}
