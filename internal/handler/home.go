package handler

import (
	"net/http"

	"github.com/boards-dev/boards/internal/domain"
	"github.com/boards-dev/boards/internal/validation"
)

type homePage struct {
	Boards    []domain.BoardSummary
	BoardForm validation.Form
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "home.html", homePage{Boards: boards, BoardForm: validation.Unbound(nil)})
}
