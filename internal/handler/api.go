package handler

import (
	"net/http"
)

func (h *Handler) APIBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.List(r.Context())
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, boards)
}

func (h *Handler) APITopics(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	page, err := h.topics.Page(r.Context(), boardId, r.URL.Query().Get("page"))
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, page)
}

// APIPosts returns a page of posts. Reading through the API is not a view.
func (h *Handler) APIPosts(w http.ResponseWriter, r *http.Request) {
	boardId, err := idParam(r, "board")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	topicId, err := idParam(r, "topic")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	page, err := h.posts.Page(r.Context(), boardId, topicId, r.URL.Query().Get("page"))
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, page)
}
