package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/boards-dev/boards/internal/config"
	"github.com/boards-dev/boards/internal/email"
	"github.com/boards-dev/boards/internal/handler"
	"github.com/boards-dev/boards/internal/jwt"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/markdown"
	"github.com/boards-dev/boards/internal/middleware"
	"github.com/boards-dev/boards/internal/middleware/ratelimiter"
	"github.com/boards-dev/boards/internal/service"
	"github.com/boards-dev/boards/internal/session"
	"github.com/boards-dev/boards/internal/storage/pg"
	"github.com/boards-dev/boards/web"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Handler        *handler.Handler
	Public         config.Public
	AuthMiddleware *middleware.Auth
	Sessions       session.Store
	RateLimiter    *ratelimiter.UserRateLimiter
	Storage        *pg.Storage
}

// SetupDependencies connects to the database and session backend and wires
// the services into the handler.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Private.Pg, pg.DefaultConnectionConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	sessions, err := NewSessionStore(ctx, cfg)
	if err != nil {
		storage.Cleanup()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	validator := service.FormValidator{}

	services := handler.Services{
		Boards: service.NewBoard(storage, validator),
		Topics: service.NewTopic(storage, validator, cfg.Public.TopicsPerPage),
		Posts:  service.NewPost(storage, validator, cfg.Public.PostsPerPage, cfg.Public.ReplyPreviewPosts),
		Views:  service.NewViews(storage),
		Auth:   service.NewAuth(storage, email.New(&cfg.Private.Email), jwtSvc, validator, &cfg.Public),
		Health: storage,
	}
	h := handler.New(web.MustLoadTemplates(), cfg.Public, markdown.New(), services)

	limits := cfg.Public.RateLimit
	return &Dependencies{
		Handler:        h,
		Public:         cfg.Public,
		AuthMiddleware: middleware.NewAuth(jwtSvc, cfg.Public.SecureCookies),
		Sessions:       sessions,
		RateLimiter:    ratelimiter.New(limits.PerMinute, limits.Burst, limits.Expire),
		Storage:        storage,
	}, nil
}

// NewSessionStore opens the session backend named in the config.
func NewSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Public.Session.Backend {
	case SessionBackendRedis:
		logger.Log.Info("using redis session store", "addr", cfg.Public.Session.Redis.Addr)
		return session.NewRedisStore(ctx, session.RedisOptions{
			Addr:     cfg.Public.Session.Redis.Addr,
			Password: cfg.Private.RedisPassword,
			DB:       cfg.Public.Session.Redis.DB,
		}, cfg.Public.Session.TTL)
	case SessionBackendMemory:
		logger.Log.Info("using in-memory session store")
		return session.NewMemoryStore(cfg.Public.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Public.Session.Backend)
	}
}

// Close releases everything SetupDependencies opened.
func (d *Dependencies) Close() error {
	d.RateLimiter.Stop()
	return errors.Join(d.Sessions.Close(), d.Storage.Cleanup())
}
