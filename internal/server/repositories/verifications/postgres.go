package verifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/snackswap/snackswap/internal/common"
	"github.com/snackswap/snackswap/internal/dbx"
	"github.com/snackswap/snackswap/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateEmailCode(ctx context.Context, email string, code string, validity time.Duration) error {
	query := `
		INSERT INTO email_verification_codes (email, code, expires_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, email, code, time.Now().Add(validity))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindEmailCode(ctx context.Context, email string, code string) (*models.VerificationCode, error) {
	query := `
		SELECT id, email, code, expires_at, created_at
		FROM email_verification_codes
		WHERE email = $1 AND code = $2 AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	vc := &models.VerificationCode{}
	err := r.db.QueryRowContext(ctx, query, email, code).
		Scan(&vc.ID, &vc.Email, &vc.Code, &vc.ExpiresAt, &vc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrCodeInvalidOrExpired
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vc, nil
}

func (r *PostgresRepository) DeleteEmailCodes(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM email_verification_codes WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateResetOTP(ctx context.Context, email string, otp string, validity time.Duration) error {
	query := `
		INSERT INTO password_reset_otps (email, otp, expires_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, email, otp, time.Now().Add(validity))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const resetOTPColumns = `id, email, otp, verified, expires_at, created_at`

func (r *PostgresRepository) scanResetOTP(row *sql.Row) (*models.ResetOTP, error) {
	o := &models.ResetOTP{}
	err := row.Scan(&o.ID, &o.Email, &o.OTP, &o.Verified, &o.ExpiresAt, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrCodeInvalidOrExpired
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) FindResetOTP(ctx context.Context, email string, otp string) (*models.ResetOTP, error) {
	query := `
		SELECT ` + resetOTPColumns + `
		FROM password_reset_otps
		WHERE email = $1 AND otp = $2 AND verified = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanResetOTP(r.db.QueryRowContext(ctx, query, email, otp))
}

func (r *PostgresRepository) MarkResetOTPVerified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE password_reset_otps SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrCodeInvalidOrExpired
	}
	return nil
}

func (r *PostgresRepository) FindVerifiedResetOTP(ctx context.Context, email string) (*models.ResetOTP, error) {
	query := `
		SELECT ` + resetOTPColumns + `
		FROM password_reset_otps
		WHERE email = $1 AND verified = TRUE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanResetOTP(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) DeleteResetOTP(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_reset_otps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
