package handler

import (
	"fmt"
	"net/http"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/middleware"
	"github.com/boards-dev/boards/internal/validation"
)

type newTopicPage struct {
	Board domain.Board
	Form  validation.Form
}

func (h *Handler) BoardTopics(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	page, err := h.topics.Page(r.Context(), boardId, r.URL.Query().Get("page"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "board_topics.html", page)
}

func (h *Handler) NewTopicGet(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	board, err := h.boards.Get(r.Context(), boardId)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "new_topic.html", newTopicPage{Board: board, Form: validation.Unbound(nil)})
}

// NewTopicPost creates the topic and its opening post, then shows the topic.
// Invalid input re-renders the form and creates nothing.
func (h *Handler) NewTopicPost(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	ctx := r.Context()
	board, err := h.boards.Get(ctx, boardId)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}

	form := validation.NewTopicForm{
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}
	topicId, err := h.topics.Create(ctx, board.Id, user.Id, form)
	if err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "new_topic.html", newTopicPage{
				Board: board,
				Form:  validation.Bind(postedValues(r, "subject", "message"), err),
			})
			return
		}
		h.renderError(w, r, err)
		return
	}
	logger.Log.Info("topic created", "board_id", board.Id, "topic_id", topicId, "user_id", user.Id)
	http.Redirect(w, r, topicURL(board.Id, topicId), http.StatusFound)
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	form := validation.BoardForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}
	board, err := h.boards.Create(r.Context(), form)
	if err != nil {
		if fe, ok := validation.AsFormErrors(err); ok {
			h.redirectWithFlash(w, r, "/", flashCookieError, fe.Error())
			return
		}
		if status := internal_errors.StatusCode(err); status < http.StatusInternalServerError {
			h.redirectWithFlash(w, r, "/", flashCookieError, err.Error())
			return
		}
		h.renderError(w, r, err)
		return
	}
	h.redirectWithFlash(w, r, "/", flashCookieSuccess, fmt.Sprintf("Board %s created.", board.Name))
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if err := h.boards.Delete(r.Context(), boardId); err != nil {
		h.renderError(w, r, err)
		return
	}
	h.redirectWithFlash(w, r, "/", flashCookieSuccess, "Board deleted.")
}
