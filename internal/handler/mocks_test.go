package handler

import (
	"context"
	"sync"

	"github.com/boards-dev/boards/internal/domain"
	"github.com/boards-dev/boards/internal/pagination"
	"github.com/boards-dev/boards/internal/service"
	"github.com/boards-dev/boards/internal/session"
	"github.com/boards-dev/boards/internal/validation"
)

// --- Boards ---

type MockBoardService struct {
	CreateFunc func(ctx context.Context, form validation.BoardForm) (domain.Board, error)
	GetFunc    func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	ListFunc   func(ctx context.Context) ([]domain.BoardSummary, error)
	DeleteFunc func(ctx context.Context, id domain.BoardId) error
}

func (m *MockBoardService) Create(ctx context.Context, form validation.BoardForm) (domain.Board, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, form)
	}
	return domain.Board{Id: 1, Name: form.Name, Description: form.Description}, nil
}

func (m *MockBoardService) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return domain.Board{Id: id, Name: "Django", Description: "Django board."}, nil
}

func (m *MockBoardService) List(ctx context.Context) ([]domain.BoardSummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockBoardService) Delete(ctx context.Context, id domain.BoardId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// --- Topics ---

type MockTopicService struct {
	CreateFunc func(ctx context.Context, board domain.BoardId, starter domain.UserId, form validation.NewTopicForm) (domain.TopicId, error)
	GetFunc    func(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error)
	PageFunc   func(ctx context.Context, board domain.BoardId, page string) (service.BoardPage, error)
}

func (m *MockTopicService) Create(ctx context.Context, board domain.BoardId, starter domain.UserId, form validation.NewTopicForm) (domain.TopicId, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board, starter, form)
	}
	return 1, nil
}

func (m *MockTopicService) Get(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, board, id)
	}
	return domain.Topic{Id: id, Board: board, Subject: "Hello, world", Starter: john}, nil
}

func (m *MockTopicService) Page(ctx context.Context, board domain.BoardId, page string) (service.BoardPage, error) {
	if m.PageFunc != nil {
		return m.PageFunc(ctx, board, page)
	}
	return service.BoardPage{
		Board:      domain.Board{Id: board, Name: "Django"},
		Pagination: pagination.New(0, 20, page),
	}, nil
}

// --- Posts ---

type MockPostService struct {
	PageFunc          func(ctx context.Context, board domain.BoardId, topic domain.TopicId, page string) (service.TopicPage, error)
	ReplyFunc         func(ctx context.Context, board domain.BoardId, topic domain.TopicId, author domain.UserId, form validation.PostForm) (service.ReplyPlacement, error)
	RecentFunc        func(ctx context.Context, board domain.BoardId, topic domain.TopicId) (domain.Topic, []domain.Post, error)
	AuthorizeEditFunc func(ctx context.Context, ref domain.PostRef, user domain.UserId) (domain.Post, error)
	EditFunc          func(ctx context.Context, ref domain.PostRef, user domain.UserId, form validation.PostForm) (domain.Post, error)
}

func (m *MockPostService) Page(ctx context.Context, board domain.BoardId, topic domain.TopicId, page string) (service.TopicPage, error) {
	if m.PageFunc != nil {
		return m.PageFunc(ctx, board, topic, page)
	}
	return service.TopicPage{
		Topic:      domain.Topic{Id: topic, Board: board, Subject: "Hello, world"},
		Pagination: pagination.New(0, 2, page),
	}, nil
}

func (m *MockPostService) Reply(ctx context.Context, board domain.BoardId, topic domain.TopicId, author domain.UserId, form validation.PostForm) (service.ReplyPlacement, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, board, topic, author, form)
	}
	return service.ReplyPlacement{Board: board, Topic: topic, Post: 1, Page: 1}, nil
}

func (m *MockPostService) Recent(ctx context.Context, board domain.BoardId, topic domain.TopicId) (domain.Topic, []domain.Post, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, board, topic)
	}
	return domain.Topic{Id: topic, Board: board, Subject: "Hello, world"}, nil, nil
}

func (m *MockPostService) AuthorizeEdit(ctx context.Context, ref domain.PostRef, user domain.UserId) (domain.Post, error) {
	if m.AuthorizeEditFunc != nil {
		return m.AuthorizeEditFunc(ctx, ref, user)
	}
	return domain.Post{Id: ref.Post, Topic: ref.Topic, Message: "Hello, world", CreatedBy: john}, nil
}

func (m *MockPostService) Edit(ctx context.Context, ref domain.PostRef, user domain.UserId, form validation.PostForm) (domain.Post, error) {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, ref, user, form)
	}
	return domain.Post{Id: ref.Post, Topic: ref.Topic, Message: form.Message, CreatedBy: john}, nil
}

// --- Views ---

// MockViewStorage counts increments so the real view service can run on top of it.
type MockViewStorage struct {
	mu    sync.Mutex
	calls map[domain.TopicId]int
}

func (m *MockViewStorage) IncrementViews(ctx context.Context, id domain.TopicId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[domain.TopicId]int)
	}
	m.calls[id]++
	return nil
}

func (m *MockViewStorage) Calls(id domain.TopicId) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[id]
}

type MockViewService struct {
	RecordViewFunc func(ctx context.Context, topic domain.TopicId, bag session.Bag) (bool, error)
}

func (m *MockViewService) RecordView(ctx context.Context, topic domain.TopicId, bag session.Bag) (bool, error) {
	if m.RecordViewFunc != nil {
		return m.RecordViewFunc(ctx, topic, bag)
	}
	return false, nil
}

// --- Auth ---

type MockAuthService struct {
	SignupFunc               func(ctx context.Context, form validation.SignupForm) (domain.User, string, error)
	LoginFunc                func(ctx context.Context, form validation.LoginForm) (domain.User, string, error)
	UserFunc                 func(ctx context.Context, id domain.UserId) (domain.User, error)
	UpdateAccountFunc        func(ctx context.Context, id domain.UserId, form validation.AccountForm) (domain.User, error)
	ChangePasswordFunc       func(ctx context.Context, id domain.UserId, form validation.PasswordChangeForm) error
	RequestPasswordResetFunc func(ctx context.Context, form validation.PasswordResetForm) error
	CheckResetTokenFunc      func(ctx context.Context, token string) (domain.User, error)
	ResetPasswordFunc        func(ctx context.Context, token string, form validation.SetPasswordForm) error
}

func (m *MockAuthService) Signup(ctx context.Context, form validation.SignupForm) (domain.User, string, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, form)
	}
	return domain.User{Id: 1, Username: form.Username}, "test-token", nil
}

func (m *MockAuthService) Login(ctx context.Context, form validation.LoginForm) (domain.User, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, form)
	}
	return domain.User{Id: 1, Username: form.Username}, "test-token", nil
}

func (m *MockAuthService) User(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(ctx, id)
	}
	return domain.User{Id: id, Username: "john", Email: "john@doe.com"}, nil
}

func (m *MockAuthService) UpdateAccount(ctx context.Context, id domain.UserId, form validation.AccountForm) (domain.User, error) {
	if m.UpdateAccountFunc != nil {
		return m.UpdateAccountFunc(ctx, id, form)
	}
	return domain.User{Id: id, FirstName: form.FirstName, LastName: form.LastName, Email: form.Email}, nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, id domain.UserId, form validation.PasswordChangeForm) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, id, form)
	}
	return nil
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, form validation.PasswordResetForm) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, form)
	}
	return nil
}

func (m *MockAuthService) CheckResetToken(ctx context.Context, token string) (domain.User, error) {
	if m.CheckResetTokenFunc != nil {
		return m.CheckResetTokenFunc(ctx, token)
	}
	return domain.User{Id: 1, Username: "john"}, nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token string, form validation.SetPasswordForm) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, form)
	}
	return nil
}

// --- Health ---

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
