package handler

import (
	"net/http"

	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/validation"
)

type formPage struct {
	Form validation.Form
}

type loginPage struct {
	Form validation.Form
	Next string
}

func (h *Handler) SignupGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signup.html", formPage{Form: validation.Unbound(nil)})
}

// SignupPost registers the user and logs them in.
func (h *Handler) SignupPost(w http.ResponseWriter, r *http.Request) {
	form := validation.SignupForm{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		Password1: r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
	}
	user, token, err := h.auth.Signup(r.Context(), form)
	if err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "signup.html", formPage{
				Form: validation.Bind(postedValues(r, "username", "email"), err),
			})
			return
		}
		h.renderError(w, r, err)
		return
	}
	logger.Log.Info("user signed up", "user_id", user.Id)
	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", loginPage{
		Form: validation.Unbound(nil),
		Next: r.URL.Query().Get("next"),
	})
}

func (h *Handler) LoginPost(w http.ResponseWriter, r *http.Request) {
	next := r.PostFormValue("next")
	form := validation.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	_, token, err := h.auth.Login(r.Context(), form)
	if err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "login.html", loginPage{
				Form: validation.Bind(postedValues(r, "username"), err),
				Next: next,
			})
			return
		}
		h.renderError(w, r, err)
		return
	}
	h.setAuthCookie(w, token)
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
