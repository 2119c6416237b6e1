package service

import (
	"context"
	"strings"

	"github.com/boards-dev/boards/internal/domain"
	"github.com/boards-dev/boards/internal/validation"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, form validation.BoardForm) (domain.Board, error)
	Get(ctx context.Context, id domain.BoardId) (domain.Board, error)
	List(ctx context.Context) ([]domain.BoardSummary, error)
	Delete(ctx context.Context, id domain.BoardId) error
}

type Board struct {
	storage   BoardStorage
	validator Validator
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, name domain.BoardName, description domain.BoardDescription) (domain.Board, error)
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	GetBoards(ctx context.Context) ([]domain.BoardSummary, error)
	DeleteBoard(ctx context.Context, id domain.BoardId) error
}

func NewBoard(storage BoardStorage, validator Validator) BoardService {
	return &Board{storage, validator}
}

func (b *Board) Create(ctx context.Context, form validation.BoardForm) (domain.Board, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	if err := b.validator.Validate(form); err != nil {
		return domain.Board{}, err
	}
	return b.storage.CreateBoard(ctx, form.Name, form.Description)
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	return b.storage.GetBoard(ctx, id)
}

func (b *Board) List(ctx context.Context) ([]domain.BoardSummary, error) {
	return b.storage.GetBoards(ctx)
}

func (b *Board) Delete(ctx context.Context, id domain.BoardId) error {
	return b.storage.DeleteBoard(ctx, id)
}
