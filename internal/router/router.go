package router

import (
	"net/http"

	"github.com/boards-dev/boards/internal/middleware"
	"github.com/boards-dev/boards/internal/middleware/metrics"
	"github.com/boards-dev/boards/internal/setup"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the application's routes. Rate limiters set with Use limit all
// endpoints of their group combined.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeadersWithCSP(deps.Public.SecureCookies, middleware.DefaultCSP))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.NotFound(h.NotFound)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.Public.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		api.Get("/boards", h.APIBoards)
		api.Get("/boards/{board}/topics", h.APITopics)
		api.Get("/boards/{board}/topics/{topic}/posts", h.APIPosts)
	})

	r.Group(func(site chi.Router) {
		site.Use(middleware.Session(deps.Sessions, middleware.SessionConfig{
			SecureCookies: deps.Public.SecureCookies,
			TTL:           deps.Public.Session.TTL,
		}))
		site.Use(middleware.GenerateCSRFToken(middleware.CSRFConfig{SecureCookies: deps.Public.SecureCookies}))
		site.Use(middleware.ValidateCSRFToken())
		site.Use(authMw.OptionalAuth())

		site.Get("/", h.Home)
		site.Get("/boards/{board}/", h.BoardTopics)
		site.Get("/boards/{board}/topics/{topic}/", h.TopicPosts)

		site.Get("/signup/", h.SignupGet)
		site.Get("/login/", h.LoginGet)
		site.Post("/logout/", h.Logout)
		site.Get("/reset/", h.PasswordResetGet)
		site.Get("/reset/done/", h.PasswordResetDone)
		site.Get("/reset/complete/", h.PasswordResetComplete)
		site.Get("/reset/{token}/", h.PasswordResetConfirmGet)
		site.Post("/reset/{token}/", h.PasswordResetConfirmPost)

		// credential and mail endpoints, limited per client IP
		site.Group(func(limited chi.Router) {
			limited.Use(middleware.RateLimit(deps.RateLimiter, middleware.GetIP))
			limited.Post("/signup/", h.SignupPost)
			limited.Post("/login/", h.LoginPost)
			limited.Post("/reset/", h.PasswordResetPost)
		})

		site.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())
			loggedIn.Get("/boards/{board}/new/", h.NewTopicGet)
			loggedIn.Post("/boards/{board}/new/", h.NewTopicPost)
			loggedIn.Get("/boards/{board}/topics/{topic}/reply/", h.ReplyGet)
			loggedIn.Post("/boards/{board}/topics/{topic}/reply/", h.ReplyPost)
			loggedIn.Get("/boards/{board}/topics/{topic}/posts/{post}/edit/", h.EditPostGet)
			loggedIn.Post("/boards/{board}/topics/{topic}/posts/{post}/edit/", h.EditPostPost)

			loggedIn.Get("/settings/account/", h.AccountGet)
			loggedIn.Post("/settings/account/", h.AccountPost)
			loggedIn.Get("/settings/password/", h.PasswordChangeGet)
			loggedIn.Post("/settings/password/", h.PasswordChangePost)
			loggedIn.Get("/settings/password/done/", h.PasswordChangeDone)
		})

		site.Group(func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())
			admin.Post("/admin/boards/", h.CreateBoard)
			admin.Post("/admin/boards/{board}/delete/", h.DeleteBoard)
		})
	})

	return r
}
