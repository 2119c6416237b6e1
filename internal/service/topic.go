package service

import (
	"context"
	"strings"

	"github.com/boards-dev/boards/internal/domain"
	"github.com/boards-dev/boards/internal/pagination"
	"github.com/boards-dev/boards/internal/validation"
)

type TopicService interface {
	Create(ctx context.Context, board domain.BoardId, starter domain.UserId, form validation.NewTopicForm) (domain.TopicId, error)
	Get(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error)
	Page(ctx context.Context, board domain.BoardId, page string) (BoardPage, error)
}

// BoardPage is one page of a board's topics, most recently active first.
type BoardPage struct {
	Board      domain.Board         `json:"board"`
	Topics     []domain.Topic       `json:"topics"`
	Pagination pagination.Paginator `json:"pagination"`
}

type Topic struct {
	storage   TopicStorage
	validator Validator
	perPage   int
}

type TopicStorage interface {
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.TopicId, error)
	GetTopic(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error)
	TopicCount(ctx context.Context, board domain.BoardId) (int, error)
	GetTopics(ctx context.Context, board domain.BoardId, limit, offset int) ([]domain.Topic, error)
}

func NewTopic(storage TopicStorage, validator Validator, topicsPerPage int) TopicService {
	return &Topic{storage: storage, validator: validator, perPage: topicsPerPage}
}

// Create opens a topic together with its first post.
func (t *Topic) Create(ctx context.Context, board domain.BoardId, starter domain.UserId, form validation.NewTopicForm) (domain.TopicId, error) {
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)
	if err := t.validator.Validate(form); err != nil {
		return 0, err
	}
	return t.storage.CreateTopic(ctx, domain.TopicCreationData{
		Board:   board,
		Subject: form.Subject,
		Message: form.Message,
		Starter: starter,
	})
}

func (t *Topic) Get(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error) {
	return t.storage.GetTopic(ctx, board, id)
}

func (t *Topic) Page(ctx context.Context, board domain.BoardId, page string) (BoardPage, error) {
	b, err := t.storage.GetBoard(ctx, board)
	if err != nil {
		return BoardPage{}, err
	}
	count, err := t.storage.TopicCount(ctx, board)
	if err != nil {
		return BoardPage{}, err
	}
	p := pagination.New(count, t.perPage, page)
	topics, err := t.storage.GetTopics(ctx, board, p.Limit(), p.Offset())
	if err != nil {
		return BoardPage{}, err
	}
	return BoardPage{Board: b, Topics: topics, Pagination: p}, nil
}
