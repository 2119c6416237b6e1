package service

import (
	"context"
	"sync"

	"github.com/boards-dev/boards/internal/domain"
)

// --- Board ---

type MockBoardStorage struct {
	CreateBoardFunc func(ctx context.Context, name domain.BoardName, description domain.BoardDescription) (domain.Board, error)
	GetBoardFunc    func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	GetBoardsFunc   func(ctx context.Context) ([]domain.BoardSummary, error)
	DeleteBoardFunc func(ctx context.Context, id domain.BoardId) error
}

func (m *MockBoardStorage) CreateBoard(ctx context.Context, name domain.BoardName, description domain.BoardDescription) (domain.Board, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, name, description)
	}
	return domain.Board{Id: 1, Name: name, Description: description}, nil
}

func (m *MockBoardStorage) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, id)
	}
	return domain.Board{Id: id, Name: "Django", Description: "This is a board about Django."}, nil
}

func (m *MockBoardStorage) GetBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	if m.GetBoardsFunc != nil {
		return m.GetBoardsFunc(ctx)
	}
	return nil, nil
}

func (m *MockBoardStorage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, id)
	}
	return nil
}

// --- Topic ---

type MockTopicStorage struct {
	MockBoardStorage
	CreateTopicFunc func(ctx context.Context, data domain.TopicCreationData) (domain.TopicId, error)
	GetTopicFunc    func(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error)
	TopicCountFunc  func(ctx context.Context, board domain.BoardId) (int, error)
	GetTopicsFunc   func(ctx context.Context, board domain.BoardId, limit, offset int) ([]domain.Topic, error)
}

func (m *MockTopicStorage) CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.TopicId, error) {
	if m.CreateTopicFunc != nil {
		return m.CreateTopicFunc(ctx, data)
	}
	return 1, nil
}

func (m *MockTopicStorage) GetTopic(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error) {
	if m.GetTopicFunc != nil {
		return m.GetTopicFunc(ctx, board, id)
	}
	return domain.Topic{Id: id, Board: board, Subject: "Hello, world"}, nil
}

func (m *MockTopicStorage) TopicCount(ctx context.Context, board domain.BoardId) (int, error) {
	if m.TopicCountFunc != nil {
		return m.TopicCountFunc(ctx, board)
	}
	return 0, nil
}

func (m *MockTopicStorage) GetTopics(ctx context.Context, board domain.BoardId, limit, offset int) ([]domain.Topic, error) {
	if m.GetTopicsFunc != nil {
		return m.GetTopicsFunc(ctx, board, limit, offset)
	}
	return nil, nil
}

// --- Post ---

type MockPostStorage struct {
	GetTopicFunc    func(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error)
	CreateReplyFunc func(ctx context.Context, data domain.ReplyCreationData) (domain.PostId, int, error)
	GetPostFunc     func(ctx context.Context, ref domain.PostRef) (domain.Post, error)
	PostCountFunc   func(ctx context.Context, topic domain.TopicId) (int, error)
	GetPostsFunc    func(ctx context.Context, topic domain.TopicId, limit, offset int) ([]domain.Post, error)
	RecentPostsFunc func(ctx context.Context, topic domain.TopicId, n int) ([]domain.Post, error)
	UpdatePostFunc  func(ctx context.Context, ref domain.PostRef, message domain.PostMessage, editor domain.UserId) (domain.Post, error)

	mu          sync.Mutex
	updateCalls int
}

func (m *MockPostStorage) GetTopic(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error) {
	if m.GetTopicFunc != nil {
		return m.GetTopicFunc(ctx, board, id)
	}
	return domain.Topic{Id: id, Board: board, Subject: "Hello, world"}, nil
}

func (m *MockPostStorage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.PostId, int, error) {
	if m.CreateReplyFunc != nil {
		return m.CreateReplyFunc(ctx, data)
	}
	return 2, 2, nil
}

func (m *MockPostStorage) GetPost(ctx context.Context, ref domain.PostRef) (domain.Post, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, ref)
	}
	return domain.Post{Id: ref.Post, Topic: ref.Topic}, nil
}

func (m *MockPostStorage) PostCount(ctx context.Context, topic domain.TopicId) (int, error) {
	if m.PostCountFunc != nil {
		return m.PostCountFunc(ctx, topic)
	}
	return 0, nil
}

func (m *MockPostStorage) GetPosts(ctx context.Context, topic domain.TopicId, limit, offset int) ([]domain.Post, error) {
	if m.GetPostsFunc != nil {
		return m.GetPostsFunc(ctx, topic, limit, offset)
	}
	return nil, nil
}

func (m *MockPostStorage) RecentPosts(ctx context.Context, topic domain.TopicId, n int) ([]domain.Post, error) {
	if m.RecentPostsFunc != nil {
		return m.RecentPostsFunc(ctx, topic, n)
	}
	return nil, nil
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, ref domain.PostRef, message domain.PostMessage, editor domain.UserId) (domain.Post, error) {
	m.mu.Lock()
	m.updateCalls++
	m.mu.Unlock()
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, ref, message, editor)
	}
	return domain.Post{Id: ref.Post, Topic: ref.Topic, Message: message}, nil
}

func (m *MockPostStorage) UpdateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

// --- Views ---

type MockViewStorage struct {
	IncrementViewsFunc func(ctx context.Context, id domain.TopicId) error

	mu    sync.Mutex
	calls map[domain.TopicId]int
}

func (m *MockViewStorage) IncrementViews(ctx context.Context, id domain.TopicId) error {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[domain.TopicId]int)
	}
	m.calls[id]++
	m.mu.Unlock()
	if m.IncrementViewsFunc != nil {
		return m.IncrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *MockViewStorage) Calls(id domain.TopicId) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[id]
}

// MockBag is a session bag backed by a map.
type MockBag struct {
	HasErr error
	SetErr error
	keys   map[string]bool
}

func (b *MockBag) Has(_ context.Context, key string) (bool, error) {
	if b.HasErr != nil {
		return false, b.HasErr
	}
	return b.keys[key], nil
}

func (b *MockBag) Set(_ context.Context, key string) error {
	if b.SetErr != nil {
		return b.SetErr
	}
	if b.keys == nil {
		b.keys = make(map[string]bool)
	}
	b.keys[key] = true
	return nil
}

// --- Auth ---

type MockAuthStorage struct {
	SaveUserFunc       func(ctx context.Context, user domain.User) (domain.UserId, error)
	UserFunc           func(ctx context.Context, id domain.UserId) (domain.User, error)
	UserByUsernameFunc func(ctx context.Context, username domain.Username) (domain.User, error)
	UsersByEmailFunc   func(ctx context.Context, email domain.Email) ([]domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, id domain.UserId, passHash string) error
	UpdateAccountFunc  func(ctx context.Context, user domain.User) error
	SaveResetTokenFunc func(ctx context.Context, token domain.PasswordResetToken) error
	ResetTokenFunc     func(ctx context.Context, tokenHash string) (domain.PasswordResetToken, error)
	ResetPasswordFunc  func(ctx context.Context, user domain.UserId, passHash string) error
}

func (m *MockAuthStorage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(ctx, user)
	}
	return 1, nil
}

func (m *MockAuthStorage) User(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(ctx, id)
	}
	return domain.User{Id: id, Username: "john"}, nil
}

func (m *MockAuthStorage) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	if m.UserByUsernameFunc != nil {
		return m.UserByUsernameFunc(ctx, username)
	}
	return domain.User{Id: 1, Username: username}, nil
}

func (m *MockAuthStorage) UsersByEmail(ctx context.Context, email domain.Email) ([]domain.User, error) {
	if m.UsersByEmailFunc != nil {
		return m.UsersByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockAuthStorage) UpdatePassword(ctx context.Context, id domain.UserId, passHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passHash)
	}
	return nil
}

func (m *MockAuthStorage) UpdateAccount(ctx context.Context, user domain.User) error {
	if m.UpdateAccountFunc != nil {
		return m.UpdateAccountFunc(ctx, user)
	}
	return nil
}

func (m *MockAuthStorage) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	if m.SaveResetTokenFunc != nil {
		return m.SaveResetTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthStorage) ResetToken(ctx context.Context, tokenHash string) (domain.PasswordResetToken, error) {
	if m.ResetTokenFunc != nil {
		return m.ResetTokenFunc(ctx, tokenHash)
	}
	return domain.PasswordResetToken{}, nil
}

func (m *MockAuthStorage) ResetPassword(ctx context.Context, user domain.UserId, passHash string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, user, passHash)
	}
	return nil
}

type sentEmail struct {
	To, Username, Link string
}

type MockEmail struct {
	SendPasswordResetFunc func(ctx context.Context, to, username, link string) error

	mu   sync.Mutex
	sent []sentEmail
}

func (m *MockEmail) SendPasswordReset(ctx context.Context, to, username, link string) error {
	m.mu.Lock()
	m.sent = append(m.sent, sentEmail{to, username, link})
	m.mu.Unlock()
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(ctx, to, username, link)
	}
	return nil
}

func (m *MockEmail) IsCorrect(email string) error {
	return nil
}

func (m *MockEmail) Outbox() []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEmail(nil), m.sent...)
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "test-token", nil
}
