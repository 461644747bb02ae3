package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
)

// ActionTokenRepository handles one-shot token tables. Email verification
// and password reset share the same shape, so one repository serves both,
// parameterized by table name.
type ActionTokenRepository struct {
	db    *pgxpool.Pool
	sb    squirrel.StatementBuilderType
	table string
}

// NewEmailVerificationTokenRepository creates a repository over the
// email_verification_tokens table
func NewEmailVerificationTokenRepository(db *pgxpool.Pool) *ActionTokenRepository {
	return newActionTokenRepository(db, "email_verification_tokens")
}

// NewPasswordResetTokenRepository creates a repository over the
// password_reset_tokens table
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *ActionTokenRepository {
	return newActionTokenRepository(db, "password_reset_tokens")
}

func newActionTokenRepository(db *pgxpool.Pool, table string) *ActionTokenRepository {
	return &ActionTokenRepository{
		db:    db,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		table: table,
	}
}

// CreateToken issues a new token for a user
func (r *ActionTokenRepository) CreateToken(ctx context.Context, token uuid.UUID, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert(r.table).
		Columns("token", "user_id", "expires_at").
		Values(token, userID, expiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// ConsumeToken validates a token and marks it used in one step. Returns the
// owning user ID. Expired, unknown, and already-used tokens all come back as
// ErrTokenInvalid so callers leak nothing about which case applied.
func (r *ActionTokenRepository) ConsumeToken(ctx context.Context, token uuid.UUID) (int64, error) {
	sql, args, err := r.sb.Update(r.table).
		Set("used", true).
		Where(squirrel.Eq{"token": token, "used": false}).
		Where(squirrel.Gt{"expires_at": time.Now()}).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build consume token query: %w", err)
	}

	var userID int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenInvalid
		}
		return 0, fmt.Errorf("error consuming token: %w", err)
	}

	return userID, nil
}

// InvalidateUserTokens marks all outstanding tokens for a user as used, so a
// newly issued token is the only valid one.
func (r *ActionTokenRepository) InvalidateUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update(r.table).
		Set("used", true).
		Where(squirrel.Eq{"user_id": userID, "used": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build invalidate tokens query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error invalidating tokens: %w", err)
	}

	return nil
}

// DeleteExpiredTokens deletes all expired tokens
func (r *ActionTokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	sql, args, err := r.sb.Delete(r.table).
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return nil
}
