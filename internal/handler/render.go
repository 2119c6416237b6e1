package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/boards-dev/boards/internal/domain"
	internal_errors "github.com/boards-dev/boards/internal/errors"
	"github.com/boards-dev/boards/internal/logger"
	"github.com/boards-dev/boards/internal/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
	flashMaxAge        = 300
)

// CommonTemplateData is available to every page as .Common.
type CommonTemplateData struct {
	Error     string
	Success   string
	User      *domain.User
	CSRFToken string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateStatus(w, r, http.StatusOK, name, data)
}

func (h *Handler) renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		logger.Log.Error("template not found", "template", name)
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(w, r),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the error page with the status carried by err.
// Anything without a status is logged and reported as a bare 500.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := internal_errors.StatusCode(err)
	page := errorPage{Status: status, Message: err.Error()}
	switch status {
	case http.StatusNotFound:
		page.Title = "Page not found"
	case http.StatusBadRequest:
		page.Title = "Bad request"
	case http.StatusConflict:
		page.Title = "Conflict"
	case http.StatusInternalServerError:
		logger.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	default:
		page.Title = http.StatusText(status)
	}
	h.renderTemplateStatus(w, r, status, "error.html", page)
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	return CommonTemplateData{
		Error:     h.popFlash(w, r, flashCookieError),
		Success:   h.popFlash(w, r, flashCookieSuccess),
		User:      middleware.GetUserFromContext(r),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	}
}

func (h *Handler) setFlash(w http.ResponseWriter, name, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads a flash message and expires its cookie so it shows once.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, name, message string) {
	h.setFlash(w, name, message)
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Public.JwtTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

// idParam reads a numeric URL parameter. Malformed ids address nothing.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, internal_errors.NotFound("Page not found")
	}
	return id, nil
}

// postedValues collects the named fields of a submitted form for re-rendering.
func postedValues(r *http.Request, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = r.PostFormValue(f)
	}
	return values
}

func topicURL(board domain.BoardId, topic domain.TopicId) string {
	return fmt.Sprintf("/boards/%d/topics/%d/", board, topic)
}

// postView is a post as the "post" partial shows it.
type postView struct {
	domain.Post
	First   bool
	Subject string
	HTML    template.HTML
	CanEdit bool
	EditURL string
}

// renderPosts prepares posts for display. openingFirst marks the first
// element as the topic's opening post, which carries the subject.
func (h *Handler) renderPosts(board domain.BoardId, topic domain.Topic, posts []domain.Post, openingFirst bool, user *domain.User) []postView {
	views := make([]postView, len(posts))
	for i, p := range posts {
		views[i] = postView{
			Post:    p,
			HTML:    h.Markdown.Render(p.Message),
			CanEdit: user != nil && user.Id == p.CreatedBy.Id,
			EditURL: fmt.Sprintf("/boards/%d/topics/%d/posts/%d/edit/", board, topic.Id, p.Id),
		}
		if i == 0 && openingFirst {
			views[i].First = true
			views[i].Subject = topic.Subject
		}
	}
	return views
}

func writeJSON(w http.ResponseWriter, v any) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		logger.Log.Error("encoding json response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// writeErrorAndStatusCode answers API requests; unknown errors stay opaque.
func writeErrorAndStatusCode(w http.ResponseWriter, err error) {
	status := internal_errors.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("api request failed", "error", err)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, internal_errors.NotFound("The requested page does not exist."))
}
