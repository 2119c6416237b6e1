package domain

import "time"

type User struct {
	Id         UserId    `json:"id"`
	Username   Username  `json:"username"`
	Email      Email     `json:"-"`
	PassHash   string    `json:"-"`
	FirstName  string    `json:"-"`
	LastName   string    `json:"-"`
	Admin      bool      `json:"-"`
	DateJoined time.Time `json:"-"`
}

type Credentials struct {
	Username Username
	Password Password
}

// PasswordResetToken is stored by hash; the raw token only travels in the emailed link.
type PasswordResetToken struct {
	TokenHash string
	UserId    UserId
	ExpiresAt time.Time
}

func (t PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
