package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ownedByJohn mirrors the service guard: only the author gets the post.
func ownedByJohn(ctx context.Context, ref domain.PostRef, user domain.UserId) (domain.Post, error) {
	if user != john.Id {
		return domain.Post{}, internal_errors.NotFound("Post not found")
	}
	return domain.Post{Id: ref.Post, Topic: ref.Topic, Message: "original text", CreatedBy: john}, nil
}

func editRequest(method string, body url.Values, user *domain.User) *http.Request {
	var req *http.Request
	if method == http.MethodPost {
		req = postForm("/boards/1/topics/3/posts/2/edit/", body)
	} else {
		req = httptest.NewRequest(method, "/boards/1/topics/3/posts/2/edit/", nil)
	}
	req = withParams(req, "board", "1", "topic", "3", "post", "2")
	if user != nil {
		req = withUser(req, *user)
	}
	return req
}

func TestEditPostGet(t *testing.T) {
	h := newTestHandler(Services{Posts: &MockPostService{AuthorizeEditFunc: ownedByJohn}})

	t.Run("author sees the form", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.EditPostGet(rr, editRequest(http.MethodGet, nil, &john))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), ">original text</textarea>")
	})

	t.Run("someone else gets 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.EditPostGet(rr, editRequest(http.MethodGet, nil, &jane))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.NotContains(t, rr.Body.String(), "original text")
	})

	t.Run("anonymous is sent to login", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.EditPostGet(rr, editRequest(http.MethodGet, nil, nil))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login/?next=%2Fboards%2F1%2Ftopics%2F3%2Fposts%2F2%2Fedit%2F", rr.Header().Get("Location"))
	})
}

func TestEditPostPost(t *testing.T) {
	t.Run("author saves and returns to the topic", func(t *testing.T) {
		var saved string
		posts := &MockPostService{
			EditFunc: func(ctx context.Context, ref domain.PostRef, user domain.UserId, form validation.PostForm) (domain.Post, error) {
				if _, err := ownedByJohn(ctx, ref, user); err != nil {
					return domain.Post{}, err
				}
				saved = form.Message
				return domain.Post{Id: ref.Post, Message: form.Message}, nil
			},
		}
		h := newTestHandler(Services{Posts: posts})
		rr := httptest.NewRecorder()

		h.EditPostPost(rr, editRequest(http.MethodPost, url.Values{"message": {"edited message"}}, &john))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/boards/1/topics/3/", rr.Header().Get("Location"))
		assert.Equal(t, "edited message", saved)
	})

	t.Run("someone else gets 404 and nothing changes", func(t *testing.T) {
		posts := &MockPostService{
			EditFunc: func(ctx context.Context, ref domain.PostRef, user domain.UserId, form validation.PostForm) (domain.Post, error) {
				_, err := ownedByJohn(ctx, ref, user)
				require.Error(t, err)
				return domain.Post{}, err
			},
		}
		h := newTestHandler(Services{Posts: posts})
		rr := httptest.NewRecorder()

		h.EditPostPost(rr, editRequest(http.MethodPost, url.Values{"message": {"edited message"}}, &jane))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("empty message re-renders", func(t *testing.T) {
		posts := &MockPostService{
			EditFunc: func(ctx context.Context, ref domain.PostRef, user domain.UserId, form validation.PostForm) (domain.Post, error) {
				return domain.Post{}, validation.FormErrors{"message": "This field is required."}
			},
		}
		h := newTestHandler(Services{Posts: posts})
		rr := httptest.NewRecorder()

		h.EditPostPost(rr, editRequest(http.MethodPost, url.Values{"message": {""}}, &john))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "This field is required.")
	})
}
