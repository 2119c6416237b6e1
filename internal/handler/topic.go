package handler

import (
	"net/http"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/middleware"
	"github.com/boards-dev/boards/internal/pagination"
	"github.com/boards-dev/boards/internal/validation"
)

type topicPostsPage struct {
	Board      domain.Board
	Topic      domain.Topic
	Posts      []postView
	Pagination pagination.Paginator
}

type replyPage struct {
	Board domain.Board
	Topic domain.Topic
	Form  validation.Form
	Posts []postView
}

// TopicPosts shows one page of a topic. The first visit per session counts
// as a view; a failing session backend only costs the count.
func (h *Handler) TopicPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	board, topic, err := h.boardAndTopic(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if _, err := h.views.RecordView(ctx, topic.Id, middleware.GetSessionBag(r)); err != nil {
		if internal_errors.IsNotFound(err) {
			h.renderError(w, r, err)
			return
		}
		logger.Log.Warn("recording topic view", "topic_id", topic.Id, "error", err)
	}

	page, err := h.posts.Page(ctx, board.Id, topic.Id, r.URL.Query().Get("page"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "topic_posts.html", topicPostsPage{
		Board:      board,
		Topic:      page.Topic,
		Posts:      h.renderPosts(board.Id, page.Topic, page.Posts, page.Pagination.Number == 1, middleware.GetUserFromContext(r)),
		Pagination: page.Pagination,
	})
}

func (h *Handler) ReplyGet(w http.ResponseWriter, r *http.Request) {
	board, topic, err := h.boardAndTopic(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	page, err := h.replyPage(r, board, topic.Id, validation.Unbound(nil))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "reply_topic.html", page)
}

// ReplyPost adds a post and sends the author to the page where it landed.
func (h *Handler) ReplyPost(w http.ResponseWriter, r *http.Request) {
	board, topic, err := h.boardAndTopic(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}

	form := validation.PostForm{Message: r.PostFormValue("message")}
	placement, err := h.posts.Reply(r.Context(), board.Id, topic.Id, user.Id, form)
	if err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			page, perr := h.replyPage(r, board, topic.Id, validation.Bind(postedValues(r, "message"), err))
			if perr != nil {
				h.renderError(w, r, perr)
				return
			}
			h.renderTemplate(w, r, "reply_topic.html", page)
			return
		}
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, placement.URL(), http.StatusFound)
}

func (h *Handler) replyPage(r *http.Request, board domain.Board, topicId domain.TopicId, form validation.Form) (replyPage, error) {
	topic, posts, err := h.posts.Recent(r.Context(), board.Id, topicId)
	if err != nil {
		return replyPage{}, err
	}
	return replyPage{
		Board: board,
		Topic: topic,
		Form:  form,
		Posts: h.renderPosts(board.Id, topic, posts, false, middleware.GetUserFromContext(r)),
	}, nil
}

// boardAndTopic resolves the board and topic named in the URL. A topic is
// only found through the board it belongs to.
func (h *Handler) boardAndTopic(r *http.Request) (domain.Board, domain.Topic, error) {
	boardId, err := idParam(r, "board")
	if err != nil {
		return domain.Board{}, domain.Topic{}, err
	}
	topicId, err := idParam(r, "topic")
	if err != nil {
		return domain.Board{}, domain.Topic{}, err
	}
	board, err := h.boards.Get(r.Context(), boardId)
	if err != nil {
		return domain.Board{}, domain.Topic{}, err
	}
	topic, err := h.topics.Get(r.Context(), boardId, topicId)
	if err != nil {
		return domain.Board{}, domain.Topic{}, err
	}
	return board, topic, nil
}
