package handler

import (
	"net/http"

	"github.com/boards-dev/boards/internal/domain"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/middleware"
	"github.com/boards-dev/boards/internal/validation"
)

type editPostPage struct {
	Board domain.Board
	Topic domain.Topic
	Form  validation.Form
}

func (h *Handler) EditPostGet(w http.ResponseWriter, r *http.Request) {
	board, topic, ref, user, err := h.editTarget(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if user == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}
	post, err := h.posts.AuthorizeEdit(r.Context(), ref, user.Id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "edit_post.html", editPostPage{
		Board: board,
		Topic: topic,
		Form:  validation.Unbound(map[string]string{"message": post.Message}),
	})
}

// EditPostPost saves the new message. Only the author may edit; everyone
// else gets the same 404 as for a post that does not exist.
func (h *Handler) EditPostPost(w http.ResponseWriter, r *http.Request) {
	board, topic, ref, user, err := h.editTarget(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if user == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}
	form := validation.PostForm{Message: r.PostFormValue("message")}
	if _, err := h.posts.Edit(r.Context(), ref, user.Id, form); err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "edit_post.html", editPostPage{
				Board: board,
				Topic: topic,
				Form:  validation.Bind(postedValues(r, "message"), err),
			})
			return
		}
		h.renderError(w, r, err)
		return
	}
	logger.Log.Info("post edited", "post_id", ref.Post, "user_id", user.Id)
	http.Redirect(w, r, topicURL(board.Id, topic.Id), http.StatusFound)
}

func (h *Handler) editTarget(r *http.Request) (domain.Board, domain.Topic, domain.PostRef, *domain.User, error) {
	board, topic, err := h.boardAndTopic(r)
	if err != nil {
		return domain.Board{}, domain.Topic{}, domain.PostRef{}, nil, err
	}
	postId, err := idParam(r, "post")
	if err != nil {
		return domain.Board{}, domain.Topic{}, domain.PostRef{}, nil, err
	}
	ref := domain.PostRef{Board: board.Id, Topic: topic.Id, Post: postId}
	return board, topic, ref, middleware.GetUserFromContext(r), nil
}
