package handler

import (
	"context"
	"html/template"

	"github.com/boards-dev/boards/internal/config"
	"github.com/boards-dev/boards/internal/markdown"
	"github.com/boards-dev/boards/internal/service"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public
	Markdown  *markdown.Renderer

	boards service.BoardService
	topics service.TopicService
	posts  service.PostService
	views  service.ViewService
	auth   service.AuthService
	health HealthChecker
}

// Services groups the business logic the handlers delegate to.
type Services struct {
	Boards service.BoardService
	Topics service.TopicService
	Posts  service.PostService
	Views  service.ViewService
	Auth   service.AuthService
	Health HealthChecker
}

func New(templates map[string]*template.Template, publicCfg config.Public, renderer *markdown.Renderer, services Services) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		Markdown:  renderer,
		boards:    services.Boards,
		topics:    services.Topics,
		posts:     services.Posts,
		views:     services.Views,
		auth:      services.Auth,
		health:    services.Health,
	}
}
