// Package web embeds the HTML templates so the binary is self-contained.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

const (
	baseTemplate     = "base.html"
	partialsTemplate = "partials.html"
	templateDir      = "templates"
)

//go:embed templates/*.html
var files embed.FS

// MustLoadTemplates parses every page template from the embedded files and
// panics on the first error.
func MustLoadTemplates() map[string]*template.Template {
	templates, err := LoadTemplates(files)
	if err != nil {
		panic(err)
	}
	return templates
}

// LoadTemplates builds one template set per page: the page itself plus the
// shared layout and partials. Sets are keyed by the page file name.
func LoadTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	entries, err := fs.ReadDir(fsys, templateDir)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".html" || name == baseTemplate || name == partialsTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(FuncMap()).ParseFS(fsys,
			path.Join(templateDir, baseTemplate),
			path.Join(templateDir, partialsTemplate),
			path.Join(templateDir, name),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"add":       add,
		"sub":       sub,
		"dict":      dict,
		"hasPrefix": strings.HasPrefix,
	}
}

func add(a, b int) int { return a + b }
func sub(a, b int) int { return a - b }

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}
