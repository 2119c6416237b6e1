package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/boards-dev/boards/internal/config"
	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	invalidLoginMessage = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	wrongOldPassword    = "Your old password was entered incorrectly. Please enter it again."
)

// ErrInvalidResetLink covers unknown, used and expired reset tokens alike.
var ErrInvalidResetLink = internal_errors.BadRequest("The password reset link was invalid, possibly because it has already been used.")

type AuthService interface {
	Signup(ctx context.Context, form validation.SignupForm) (domain.User, string, error)
	Login(ctx context.Context, form validation.LoginForm) (domain.User, string, error)
	User(ctx context.Context, id domain.UserId) (domain.User, error)
	UpdateAccount(ctx context.Context, id domain.UserId, form validation.AccountForm) (domain.User, error)
	ChangePassword(ctx context.Context, id domain.UserId, form validation.PasswordChangeForm) error
	RequestPasswordReset(ctx context.Context, form validation.PasswordResetForm) error
	CheckResetToken(ctx context.Context, token string) (domain.User, error)
	ResetPassword(ctx context.Context, token string, form validation.SetPasswordForm) error
}

type Auth struct {
	storage   AuthStorage
	email     Email
	jwt       Jwt
	validator Validator
	cfg       *config.Public
	now       func() time.Time
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.UserId, error)
	User(ctx context.Context, id domain.UserId) (domain.User, error)
	UserByUsername(ctx context.Context, username domain.Username) (domain.User, error)
	UsersByEmail(ctx context.Context, email domain.Email) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id domain.UserId, passHash string) error
	UpdateAccount(ctx context.Context, user domain.User) error
	SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error
	ResetToken(ctx context.Context, tokenHash string) (domain.PasswordResetToken, error)
	ResetPassword(ctx context.Context, user domain.UserId, passHash string) error
}

type Email interface {
	SendPasswordReset(ctx context.Context, to, username, link string) error
	IsCorrect(email string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, email Email, jwt Jwt, validator Validator, cfg *config.Public) *Auth {
	return &Auth{
		storage:   storage,
		email:     email,
		jwt:       jwt,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Signup registers the user and returns an access token so they are
// logged in straight away.
func (a *Auth) Signup(ctx context.Context, form validation.SignupForm) (domain.User, string, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if err := a.validator.Validate(form); err != nil {
		return domain.User{}, "", err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(form.Password1), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}
	user := domain.User{
		Username:   form.Username,
		Email:      form.Email,
		PassHash:   string(passHash),
		DateJoined: a.now().UTC(),
	}
	user.Id, err = a.storage.SaveUser(ctx, user)
	if err != nil {
		if internal_errors.StatusCode(err) == http.StatusConflict {
			return domain.User{}, "", validation.FormErrors{"username": err.Error()}
		}
		return domain.User{}, "", err
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (a *Auth) Login(ctx context.Context, form validation.LoginForm) (domain.User, string, error) {
	form.Username = strings.TrimSpace(form.Username)
	if err := a.validator.Validate(form); err != nil {
		return domain.User{}, "", err
	}

	user, err := a.storage.UserByUsername(ctx, form.Username)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return domain.User{}, "", validation.NonField(invalidLoginMessage)
		}
		return domain.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(form.Password)); err != nil {
		logger.Log.Debug("password mismatch", "user_id", user.Id)
		return domain.User{}, "", validation.NonField(invalidLoginMessage)
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (a *Auth) User(ctx context.Context, id domain.UserId) (domain.User, error) {
	return a.storage.User(ctx, id)
}

func (a *Auth) UpdateAccount(ctx context.Context, id domain.UserId, form validation.AccountForm) (domain.User, error) {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	if err := a.validator.Validate(form); err != nil {
		return domain.User{}, err
	}

	user, err := a.storage.User(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.Email = form.Email
	if err := a.storage.UpdateAccount(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (a *Auth) ChangePassword(ctx context.Context, id domain.UserId, form validation.PasswordChangeForm) error {
	if err := a.validator.Validate(form); err != nil {
		return err
	}

	user, err := a.storage.User(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(form.OldPassword)); err != nil {
		return validation.FormErrors{"old_password": wrongOldPassword}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(form.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}
	return a.storage.UpdatePassword(ctx, id, string(passHash))
}

// RequestPasswordReset mails a one-time link to every account registered
// with the address. Unknown addresses succeed silently.
func (a *Auth) RequestPasswordReset(ctx context.Context, form validation.PasswordResetForm) error {
	form.Email = strings.TrimSpace(form.Email)
	if err := a.validator.Validate(form); err != nil {
		return err
	}

	users, err := a.storage.UsersByEmail(ctx, form.Email)
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := a.email.IsCorrect(user.Email); err != nil {
			logger.Log.Warn("skipping password reset for malformed address", "user_id", user.Id)
			continue
		}
		token := uuid.NewString()
		err := a.storage.SaveResetToken(ctx, domain.PasswordResetToken{
			TokenHash: hashToken(token),
			UserId:    user.Id,
			ExpiresAt: a.now().UTC().Add(a.cfg.PasswordResetTTL),
		})
		if err != nil {
			return err
		}
		if err := a.email.SendPasswordReset(ctx, user.Email, user.Username, ResetLink(a.cfg.SiteURL, token)); err != nil {
			logger.Log.Error("failed to send password reset email", "user_id", user.Id, "error", err)
			return err
		}
	}
	return nil
}

// ResetLink is the confirmation URL mailed for token.
func ResetLink(siteURL, token string) string {
	return strings.TrimRight(siteURL, "/") + "/reset/" + token + "/"
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CheckResetToken returns the user a reset token was issued to.
func (a *Auth) CheckResetToken(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrInvalidResetLink
	}
	stored, err := a.storage.ResetToken(ctx, hashToken(token))
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return domain.User{}, ErrInvalidResetLink
		}
		return domain.User{}, err
	}
	if stored.Expired(a.now()) {
		return domain.User{}, ErrInvalidResetLink
	}
	user, err := a.storage.User(ctx, stored.UserId)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return domain.User{}, ErrInvalidResetLink
		}
		return domain.User{}, err
	}
	return user, nil
}

// ResetPassword sets a new password and burns every outstanding token of the user.
func (a *Auth) ResetPassword(ctx context.Context, token string, form validation.SetPasswordForm) error {
	user, err := a.CheckResetToken(ctx, token)
	if err != nil {
		return err
	}
	if err := a.validator.Validate(form); err != nil {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(form.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}
	if err := a.storage.ResetPassword(ctx, user.Id, string(passHash)); err != nil {
		if internal_errors.IsNotFound(err) {
			return ErrInvalidResetLink
		}
		return err
	}
	return nil
}

// IsInvalidResetLink reports whether err means the reset link cannot be used.
func IsInvalidResetLink(err error) bool {
	return errors.Is(err, ErrInvalidResetLink)
}
