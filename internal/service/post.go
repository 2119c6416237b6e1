package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/pagination"
	"github.com/boards-dev/boards/internal/validation"
)

type PostService interface {
	Page(ctx context.Context, board domain.BoardId, topic domain.TopicId, page string) (TopicPage, error)
	Reply(ctx context.Context, board domain.BoardId, topic domain.TopicId, author domain.UserId, form validation.PostForm) (ReplyPlacement, error)
	Recent(ctx context.Context, board domain.BoardId, topic domain.TopicId) (domain.Topic, []domain.Post, error)
	AuthorizeEdit(ctx context.Context, ref domain.PostRef, user domain.UserId) (domain.Post, error)
	Edit(ctx context.Context, ref domain.PostRef, user domain.UserId, form validation.PostForm) (domain.Post, error)
}

// TopicPage is one page of a topic's posts in the order they were written.
type TopicPage struct {
	Topic      domain.Topic         `json:"topic"`
	Posts      []domain.Post        `json:"posts"`
	Pagination pagination.Paginator `json:"pagination"`
}

// ReplyPlacement says where a new reply ended up in its topic.
type ReplyPlacement struct {
	Board domain.BoardId
	Topic domain.TopicId
	Post  domain.PostId
	Page  int
}

// URL points at the reply on the page that shows it.
func (p ReplyPlacement) URL() string {
	return fmt.Sprintf("/boards/%d/topics/%d/?page=%d#%d", p.Board, p.Topic, p.Page, p.Post)
}

type Post struct {
	storage      PostStorage
	validator    Validator
	perPage      int
	previewPosts int
}

type PostStorage interface {
	GetTopic(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error)
	CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.PostId, int, error)
	GetPost(ctx context.Context, ref domain.PostRef) (domain.Post, error)
	PostCount(ctx context.Context, topic domain.TopicId) (int, error)
	GetPosts(ctx context.Context, topic domain.TopicId, limit, offset int) ([]domain.Post, error)
	RecentPosts(ctx context.Context, topic domain.TopicId, n int) ([]domain.Post, error)
	UpdatePost(ctx context.Context, ref domain.PostRef, message domain.PostMessage, editor domain.UserId) (domain.Post, error)
}

func NewPost(storage PostStorage, validator Validator, postsPerPage, previewPosts int) PostService {
	return &Post{storage: storage, validator: validator, perPage: postsPerPage, previewPosts: previewPosts}
}

func (p *Post) Page(ctx context.Context, board domain.BoardId, topic domain.TopicId, page string) (TopicPage, error) {
	t, err := p.storage.GetTopic(ctx, board, topic)
	if err != nil {
		return TopicPage{}, err
	}
	count, err := p.storage.PostCount(ctx, topic)
	if err != nil {
		return TopicPage{}, err
	}
	pg := pagination.New(count, p.perPage, page)
	posts, err := p.storage.GetPosts(ctx, topic, pg.Limit(), pg.Offset())
	if err != nil {
		return TopicPage{}, err
	}
	return TopicPage{Topic: t, Posts: posts, Pagination: pg}, nil
}

// Reply appends a post to the topic and bumps its activity time. The new
// post is the last one, so its page follows from the post count.
func (p *Post) Reply(ctx context.Context, board domain.BoardId, topic domain.TopicId, author domain.UserId, form validation.PostForm) (ReplyPlacement, error) {
	form.Message = strings.TrimSpace(form.Message)
	if err := p.validator.Validate(form); err != nil {
		return ReplyPlacement{}, err
	}
	id, count, err := p.storage.CreateReply(ctx, domain.ReplyCreationData{
		Board:   board,
		Topic:   topic,
		Message: form.Message,
		Author:  author,
	})
	if err != nil {
		return ReplyPlacement{}, err
	}
	return ReplyPlacement{
		Board: board,
		Topic: topic,
		Post:  id,
		Page:  pagination.PageFor(count, p.perPage),
	}, nil
}

// Recent returns the topic with its latest posts, newest first, for the reply form.
func (p *Post) Recent(ctx context.Context, board domain.BoardId, topic domain.TopicId) (domain.Topic, []domain.Post, error) {
	t, err := p.storage.GetTopic(ctx, board, topic)
	if err != nil {
		return domain.Topic{}, nil, err
	}
	posts, err := p.storage.RecentPosts(ctx, topic, p.previewPosts)
	if err != nil {
		return domain.Topic{}, nil, err
	}
	return t, posts, nil
}

// AuthorizeEdit loads a post for editing. Posts written by someone else are
// reported as missing so their existence is not revealed.
func (p *Post) AuthorizeEdit(ctx context.Context, ref domain.PostRef, user domain.UserId) (domain.Post, error) {
	post, err := p.storage.GetPost(ctx, ref)
	if err != nil {
		return domain.Post{}, err
	}
	if post.CreatedBy.Id != user {
		return domain.Post{}, internal_errors.NotFound("Post not found")
	}
	return post, nil
}

func (p *Post) Edit(ctx context.Context, ref domain.PostRef, user domain.UserId, form validation.PostForm) (domain.Post, error) {
	if _, err := p.AuthorizeEdit(ctx, ref, user); err != nil {
		return domain.Post{}, err
	}
	form.Message = strings.TrimSpace(form.Message)
	if err := p.validator.Validate(form); err != nil {
		return domain.Post{}, err
	}
	return p.storage.UpdatePost(ctx, ref, form.Message, user)
}
