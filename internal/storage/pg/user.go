package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
)

const userColumns = "id, username, email, pass_hash, first_name, last_name, is_admin, date_joined"

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.Username, &u.Email, &u.PassHash, &u.FirstName, &u.LastName, &u.Admin, &u.DateJoined)
	return u, err
}

func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO users (username, email, pass_hash, first_name, last_name, is_admin)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, user.Username, user.Email, user.PassHash, user.FirstName, user.LastName, user.Admin).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, internal_errors.Conflict("A user with that username already exists.")
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) User(ctx context.Context, id domain.UserId) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *Storage) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// UsersByEmail matches case-insensitively; emails are not unique.
func (s *Storage) UsersByEmail(ctx context.Context, email domain.Email) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(email) = LOWER($1) ORDER BY id", email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return users, nil
}

func (s *Storage) UpdatePassword(ctx context.Context, id domain.UserId, passHash string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE users SET pass_hash = $1 WHERE id = $2", passHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}

func (s *Storage) UpdateAccount(ctx context.Context, user domain.User) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET first_name = $1, last_name = $2, email = $3 WHERE id = $4",
		user.FirstName, user.LastName, user.Email, user.Id)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}
