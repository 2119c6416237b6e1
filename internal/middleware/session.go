package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/boards-dev/boards/internal/session"
	"github.com/google/uuid"
)

const SessionCookie = "sessionid"

type sessionContextKey struct{}

type SessionConfig struct {
	SecureCookies bool
	TTL           time.Duration
}

// Session attaches the visitor's session bag to the request, issuing a new
// session cookie when the visitor has none or it is malformed.
func Session(store session.Store, config SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
			}
			// refresh on every request so the cookie slides with the store's expiry
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(config.TTL.Seconds()),
				HttpOnly: true,
				Secure:   config.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionContextKey{}, store.Bag(id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionBag returns the request's session bag, or nil outside the Session middleware.
func GetSessionBag(r *http.Request) session.Bag {
	bag, _ := r.Context().Value(sessionContextKey{}).(session.Bag)
	return bag
}
