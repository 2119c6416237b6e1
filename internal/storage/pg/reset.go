package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
)

func (s *Storage) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO password_reset_tokens (token_hash, user_id, expires_at) VALUES ($1, $2, $3)",
		token.TokenHash, token.UserId, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}
	return nil
}

func (s *Storage) ResetToken(ctx context.Context, tokenHash string) (domain.PasswordResetToken, error) {
	var token domain.PasswordResetToken
	err := s.db.QueryRowContext(ctx,
		"SELECT token_hash, user_id, expires_at FROM password_reset_tokens WHERE token_hash = $1", tokenHash,
	).Scan(&token.TokenHash, &token.UserId, &token.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PasswordResetToken{}, internal_errors.NotFound("Reset token not found")
		}
		return domain.PasswordResetToken{}, fmt.Errorf("failed to fetch reset token: %w", err)
	}
	return token, nil
}

// ResetPassword sets a new password hash and invalidates every outstanding
// reset token of the user in one transaction.
func (s *Storage) ResetPassword(ctx context.Context, user domain.UserId, passHash string) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "UPDATE users SET pass_hash = $1 WHERE id = $2", passHash, user)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return internal_errors.NotFound("User not found")
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM password_reset_tokens WHERE user_id = $1", user); err != nil {
			return fmt.Errorf("failed to delete reset tokens: %w", err)
		}
		return nil
	})
}
