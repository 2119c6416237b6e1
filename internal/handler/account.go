package handler

import (
	"net/http"

	"github.com/boards-dev/boards/internal/domain"
	"github.com/boards-dev/boards/internal/middleware"
	"github.com/boards-dev/boards/internal/service"
	"github.com/boards-dev/boards/internal/validation"
	"github.com/go-chi/chi/v5"
)

type resetConfirmPage struct {
	Invalid  bool
	Username domain.Username
	Form     validation.Form
}

func (h *Handler) AccountGet(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetUserFromContext(r)
	if current == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}
	user, err := h.auth.User(r.Context(), current.Id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, "my_account.html", formPage{Form: validation.Unbound(map[string]string{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	})})
}

func (h *Handler) AccountPost(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetUserFromContext(r)
	if current == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}
	form := validation.AccountForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
	}
	if _, err := h.auth.UpdateAccount(r.Context(), current.Id, form); err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "my_account.html", formPage{
				Form: validation.Bind(postedValues(r, "first_name", "last_name", "email"), err),
			})
			return
		}
		h.renderError(w, r, err)
		return
	}
	h.redirectWithFlash(w, r, "/settings/account/", flashCookieSuccess, "Your account has been updated.")
}

func (h *Handler) PasswordChangeGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "password_change.html", formPage{Form: validation.Unbound(nil)})
}

// PasswordChangePost keeps the user logged in: the identity cookie does not
// depend on the password.
func (h *Handler) PasswordChangePost(w http.ResponseWriter, r *http.Request) {
	current := middleware.GetUserFromContext(r)
	if current == nil {
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
		return
	}
	form := validation.PasswordChangeForm{
		OldPassword:  r.PostFormValue("old_password"),
		NewPassword1: r.PostFormValue("new_password1"),
		NewPassword2: r.PostFormValue("new_password2"),
	}
	if err := h.auth.ChangePassword(r.Context(), current.Id, form); err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "password_change.html", formPage{Form: validation.Bind(nil, err)})
			return
		}
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/settings/password/done/", http.StatusFound)
}

func (h *Handler) PasswordChangeDone(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "password_change_done.html", nil)
}

func (h *Handler) PasswordResetGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "password_reset.html", formPage{Form: validation.Unbound(nil)})
}

// PasswordResetPost always ends on the same page, whether or not the
// address belongs to anyone.
func (h *Handler) PasswordResetPost(w http.ResponseWriter, r *http.Request) {
	form := validation.PasswordResetForm{Email: r.PostFormValue("email")}
	if err := h.auth.RequestPasswordReset(r.Context(), form); err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "password_reset.html", formPage{
				Form: validation.Bind(postedValues(r, "email"), err),
			})
			return
		}
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/reset/done/", http.StatusFound)
}

func (h *Handler) PasswordResetDone(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "password_reset_done.html", nil)
}

func (h *Handler) PasswordResetConfirmGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CheckResetToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.renderResetFailure(w, r, err)
		return
	}
	h.renderTemplate(w, r, "password_reset_confirm.html", resetConfirmPage{
		Username: user.Username,
		Form:     validation.Unbound(nil),
	})
}

func (h *Handler) PasswordResetConfirmPost(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	user, err := h.auth.CheckResetToken(r.Context(), token)
	if err != nil {
		h.renderResetFailure(w, r, err)
		return
	}
	form := validation.SetPasswordForm{
		NewPassword1: r.PostFormValue("new_password1"),
		NewPassword2: r.PostFormValue("new_password2"),
	}
	if err := h.auth.ResetPassword(r.Context(), token, form); err != nil {
		if _, ok := validation.AsFormErrors(err); ok {
			h.renderTemplate(w, r, "password_reset_confirm.html", resetConfirmPage{
				Username: user.Username,
				Form:     validation.Bind(nil, err),
			})
			return
		}
		h.renderResetFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/reset/complete/", http.StatusFound)
}

func (h *Handler) PasswordResetComplete(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "password_reset_complete.html", nil)
}

func (h *Handler) renderResetFailure(w http.ResponseWriter, r *http.Request, err error) {
	if service.IsInvalidResetLink(err) {
		h.renderTemplate(w, r, "password_reset_confirm.html", resetConfirmPage{Invalid: true})
		return
	}
	h.renderError(w, r, err)
}
