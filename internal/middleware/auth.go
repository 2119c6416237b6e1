package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	jwt_internal "github.com/boards-dev/boards/internal/jwt"
	"github.com/boards-dev/boards/internal/logger"
)

const (
	AccessTokenCookie = "accessToken"
	flashCookieError  = "flash_error"
	loginPath         = "/login/"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

type Auth struct {
	jwtService    jwt_internal.JwtService
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		secureCookies: secureCookies,
	}
}

// NeedAuth sends anonymous visitors to the login page and back afterwards.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.wrapWithRedirect(a.auth(false))
}

// AdminOnly behaves like NeedAuth and also turns away non-admins.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.wrapWithRedirect(a.auth(true))
}

// OptionalAuth populates the user when the token is valid and never blocks.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := a.extractUser(r)
			if user != nil {
				ctx := context.WithValue(r.Context(), UserClaimsKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Sentinel errors for extractUser
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// extractUser reads the token from the cookie, or from a bearer header for API clients.
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := jwt_internal.UserFromToken(token)
	if err != nil {
		return nil, errInvalidClaims
	}
	return user, nil
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Error("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					http.Error(w, err.Error(), internal_errors.StatusCode(err))
				}
				return
			}

			if adminOnly && !user.Admin {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authRedirectWriter intercepts 401/403 errors and redirects to login
type authRedirectWriter struct {
	http.ResponseWriter
	request       *http.Request
	secureCookies bool
	redirected    bool
}

func (w *authRedirectWriter) WriteHeader(statusCode int) {
	if w.redirected {
		return
	}

	switch statusCode {
	case http.StatusUnauthorized:
		w.redirected = true
		redirectToLogin(w.ResponseWriter, w.request, w.secureCookies, "Please log in to continue")
		return
	case http.StatusForbidden:
		w.redirected = true
		redirectToLogin(w.ResponseWriter, w.request, w.secureCookies, "Access denied")
		return
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *authRedirectWriter) Write(data []byte) (int, error) {
	if w.redirected {
		return len(data), nil
	}
	return w.ResponseWriter.Write(data)
}

// LoginURL is the login page that returns to next once the user signs in.
func LoginURL(next string) string {
	if next == "" {
		return loginPath
	}
	return loginPath + "?next=" + url.QueryEscape(next)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, secureCookies bool, errorMsg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieError,
		Value:    base64.StdEncoding.EncodeToString([]byte(errorMsg)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
}

func (a *Auth) wrapWithRedirect(authMiddleware func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &authRedirectWriter{
				ResponseWriter: w,
				request:        r,
				secureCookies:  a.secureCookies,
			}
			// the wrapper only sees responses written before next runs
			authMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r)
			})).ServeHTTP(wrapper, r)
		})
	}
}

// GetUserFromContext retrieves the user from the context
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
