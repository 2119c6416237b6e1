// Package markdown turns post messages into sanitized HTML for display.
// Messages are stored as typed and rendered on every view.
package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/boards-dev/boards/internal/logger"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		// raw HTML passes through goldmark and is cleaned by the policy below
		goldmark.WithRendererOptions(html.WithUnsafe(), html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Table),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: p}
}

// Render converts markdown to sanitized HTML. If conversion fails the text is
// shown escaped.
func (r *Renderer) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Error("rendering markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(strings.TrimSpace(r.policy.Sanitize(buf.String())))
}
