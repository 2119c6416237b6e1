package middleware

import (
	"context"
	"net/http"

	"github.com/boards-dev/boards/internal/csrf"
	"github.com/boards-dev/boards/internal/logger"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFFormField  = "csrf_token"
)

type csrfContextKey string

const csrfTokenContextKey csrfContextKey = "csrf_token"

type CSRFConfig struct {
	SecureCookies bool
}

// GenerateCSRFToken makes sure every visitor carries a token cookie and
// exposes it to templates through the request context.
func GenerateCSRFToken(config CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			cookie, err := r.Cookie(CSRFCookieName)
			if err != nil || cookie.Value == "" {
				token, err = csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   86400,
				})
			} else {
				token = cookie.Value
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateCSRFToken rejects unsafe requests whose form token does not match the cookie.
func ValidateCSRFToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(CSRFCookieName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}
			if err := r.ParseForm(); err != nil {
				logger.Log.Error("failed to parse form", "error", err)
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}
			if !csrf.ValidateToken(cookie.Value, r.PostFormValue(CSRFFormField)) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}
