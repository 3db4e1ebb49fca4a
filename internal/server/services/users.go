// Package services implements the application logic between the HTTP API
// and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/snackswap/snackswap/internal/common"
	"github.com/snackswap/snackswap/internal/dbx"
	"github.com/snackswap/snackswap/internal/server/auth"
	"github.com/snackswap/snackswap/internal/server/config"
	"github.com/snackswap/snackswap/internal/server/email"
	"github.com/snackswap/snackswap/internal/server/models"
	"github.com/snackswap/snackswap/internal/server/repositories/repomanager"
	"github.com/snackswap/snackswap/internal/validate"
)

const otpLength = 6

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	sender                       email.Sender
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	otpValidityDuration          time.Duration
	signupTemplate               string
	resetTemplate                string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, sender email.Sender, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		sender:                       sender,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		otpValidityDuration:          cfg.OTPValidityDuration,
		signupTemplate:               cfg.EmailSignupTemplate,
		resetTemplate:                cfg.EmailResetTemplate,
	}
}

func (s *UserService) generateTokenPair(ctx context.Context, db dbx.DBTX, userID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	repo := s.repomanager.RefreshTokens(db)
	if err := repo.Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("error saving refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SignupStart validates the registration input, reserves nothing, and
// emails a verification code to the address. Duplicate usernames are
// rejected up front so the user fixes them before checking mail.
func (s *UserService) SignupStart(ctx context.Context, in validate.SignupInput) (map[string]string, error) {
	if problems := validate.Signup(in); len(problems) > 0 {
		return problems, nil
	}

	taken, err := s.repomanager.Users(s.db).UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, common.ErrUsernameTaken
	}

	code, err := common.GenerateOTP(otpLength)
	if err != nil {
		return nil, fmt.Errorf("error generating code: %w", err)
	}

	emailAddr := strings.ToLower(in.Email)
	if err := s.repomanager.Verifications(s.db).CreateEmailCode(ctx, emailAddr, code, s.otpValidityDuration); err != nil {
		return nil, fmt.Errorf("error saving code: %w", err)
	}

	if err := s.sender.SendCode(ctx, emailAddr, s.signupTemplate, code); err != nil {
		return nil, fmt.Errorf("error sending code: %w", err)
	}

	return nil, nil
}

// ResendSignupCode issues a fresh code for an in-progress signup.
func (s *UserService) ResendSignupCode(ctx context.Context, emailAddr string) error {
	code, err := common.GenerateOTP(otpLength)
	if err != nil {
		return fmt.Errorf("error generating code: %w", err)
	}

	emailAddr = strings.ToLower(emailAddr)
	if err := s.repomanager.Verifications(s.db).CreateEmailCode(ctx, emailAddr, code, s.otpValidityDuration); err != nil {
		return fmt.Errorf("error saving code: %w", err)
	}

	return s.sender.SendCode(ctx, emailAddr, s.signupTemplate, code)
}

// SignupComplete re-checks the submitted fields, matches the emailed code
// and creates the account in one transaction. The fields are validated
// again because the completing request need not carry the same values the
// start step saw. New accounts start with rating 5.0, zero points and all
// notification preferences on, and the codes for the address are consumed
// so none can be replayed.
func (s *UserService) SignupComplete(ctx context.Context, in validate.SignupInput, code string) (map[string]string, *models.User, *TokenPair, error) {
	if problems := validate.Signup(in); len(problems) > 0 {
		return problems, nil, nil, nil
	}

	emailAddr := strings.ToLower(in.Email)

	if _, err := s.repomanager.Verifications(s.db).FindEmailCode(ctx, emailAddr, code); err != nil {
		return nil, nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User
	var pair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{
			Username:       in.Username,
			Email:          emailAddr,
			Name:           in.Name,
			Hostel:         in.Hostel,
			RoomNumber:     in.Room,
			Phone:          in.Phone,
			Rating:         5.0,
			Points:         0,
			NotifEmail:     true,
			NotifApp:       true,
			NotifPromo:     true,
			PasswordHash:   string(hash),
			EmailConfirmed: true,
		})
		if err != nil {
			return err
		}

		if err := s.repomanager.Verifications(tx).DeleteEmailCodes(ctx, emailAddr); err != nil {
			return fmt.Errorf("error consuming codes: %w", err)
		}

		pair, err = s.generateTokenPair(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return nil, user, pair, nil
}

// Login authenticates by email or username plus password.
func (s *UserService) Login(ctx context.Context, identifier string, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	byEmail := strings.Contains(identifier, "@")

	var user *models.User
	var err error
	if byEmail {
		user, err = repo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			if byEmail {
				return nil, nil, common.ErrInvalidCredentials
			}
			return nil, nil, common.ErrUsernameNotFound
		}
		return nil, nil, fmt.Errorf("error loading user: %w", err)
	}

	if !user.EmailConfirmed {
		return nil, nil, common.ErrEmailNotConfirmed
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, s.db, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// RefreshToken rotates a refresh token: the presented token is deleted and a
// fresh pair is issued inside one transaction.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		pair, err = s.generateTokenPair(ctx, tx, token.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout invalidates the refresh token. The access token simply ages out.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// ForgotPassword mails a reset OTP when the address has an account.
func (s *UserService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(emailAddr)

	if _, err := s.repomanager.Users(s.db).GetByEmail(ctx, emailAddr); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrEmailNotFound
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	otp, err := common.GenerateOTP(otpLength)
	if err != nil {
		return fmt.Errorf("error generating otp: %w", err)
	}

	if err := s.repomanager.Verifications(s.db).CreateResetOTP(ctx, emailAddr, otp, s.otpValidityDuration); err != nil {
		return fmt.Errorf("error saving otp: %w", err)
	}

	return s.sender.SendCode(ctx, emailAddr, s.resetTemplate, otp)
}

// VerifyResetOTP checks a reset code and marks it verified. A code verifies
// exactly once.
func (s *UserService) VerifyResetOTP(ctx context.Context, emailAddr string, otp string) error {
	repo := s.repomanager.Verifications(s.db)

	row, err := repo.FindResetOTP(ctx, strings.ToLower(emailAddr), otp)
	if err != nil {
		return err
	}

	return repo.MarkResetOTPVerified(ctx, row.ID)
}

// ResetPassword sets a new password for an address holding a verified OTP,
// consuming the OTP row.
func (s *UserService) ResetPassword(ctx context.Context, emailAddr string, newPassword string) error {
	if len(newPassword) < validate.MinPasswordLength {
		return fmt.Errorf("%w: password too short", common.ErrInvalidCredentials)
	}

	emailAddr = strings.ToLower(emailAddr)

	row, err := s.repomanager.Verifications(s.db).FindVerifiedResetOTP(ctx, emailAddr)
	if err != nil {
		return err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrEmailNotFound
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		return s.repomanager.Verifications(tx).DeleteResetOTP(ctx, row.ID)
	})
}

// ChangePassword re-authenticates with the current password before setting
// a new one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, current string, newPassword string) error {
	if len(newPassword) < validate.MinPasswordLength {
		return fmt.Errorf("%w: password too short", common.ErrInvalidCredentials)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return common.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return repo.UpdatePassword(ctx, userID, string(hash))
}

// GetProfile returns the user's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// UpdateProfile applies the editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) error {
	upd.Email = strings.ToLower(upd.Email)
	return s.repomanager.Users(s.db).UpdateProfile(ctx, userID, upd)
}

// UpdatePreferences applies the notification toggles.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, prefs models.NotificationPrefs) error {
	return s.repomanager.Users(s.db).UpdatePreferences(ctx, userID, prefs)
}
