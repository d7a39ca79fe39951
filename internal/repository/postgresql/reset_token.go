package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type resetTokenRepositoryImpl struct {
	db *database.DB
}

func NewResetTokenRepository(db *database.DB) auth.ResetTokenRepository {
	return &resetTokenRepositoryImpl{db: db}
}

func (r *resetTokenRepositoryImpl) Upsert(ctx context.Context, token auth.ResetToken) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reset_tokens (username, otp, role, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE
		SET otp = EXCLUDED.otp, role = EXCLUDED.role, expires_at = EXCLUDED.expires_at
	`
	_, err := q.Exec(ctx, query, token.Username, token.OTP, token.Role, token.ExpiresAt)
	return err
}

// Consume deletes the token in the same statement that reads it, so an OTP
// can be redeemed once.
func (r *resetTokenRepositoryImpl) Consume(ctx context.Context, username, otp string) (auth.ResetToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM reset_tokens
		WHERE username = $1 AND otp = $2
		RETURNING username, otp, role, expires_at
	`
	var t auth.ResetToken
	err := q.QueryRow(ctx, query, username, otp).Scan(&t.Username, &t.OTP, &t.Role, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.ResetToken{}, auth.ErrResetTokenNotFound
		}
		return auth.ResetToken{}, err
	}
	return t, nil
}

func (r *resetTokenRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM reset_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
