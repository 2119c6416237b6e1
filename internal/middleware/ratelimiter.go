package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/middleware/ratelimiter"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r); user != nil && user.Admin { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				http.Error(w, err.Error(), internal_errors.StatusCode(err))
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext identifies a signed-in user. Use behind NeedAuth.
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("Can't get user id")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}

// GetIP extracts the client IP from RemoteAddr. Forwarding headers are not
// trusted since they can be set by the client.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}

// GetUserOrIP prefers the user id and falls back to the client IP.
func GetUserOrIP(r *http.Request) (string, error) {
	if id, err := GetUserIDFromContext(r); err == nil {
		return id, nil
	}
	return GetIP(r)
}
