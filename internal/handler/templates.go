package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/agora-dev/agora/internal/markdown"
)

const (
	baseTemplate     = "base.html"
	partialsTemplate = "partials.html"
	tmplDir          = "templates"
)

// Templates rendered without the page layout.
var fragments = map[string]bool{
	"replies.html": true,
}

//go:embed templates/*.html
var templatesFS embed.FS

// MustLoadTemplates parses every page together with the layout and shared partials.
func MustLoadTemplates(tp *markdown.TextProcessor) map[string]*template.Template {
	funcs := template.FuncMap{
		"pluralize": pluralize,
		"markdown":  tp.Render,
		"sub":       sub,
		"add":       add,
		"dict":      dict,
	}

	files, err := fs.ReadDir(templatesFS, tmplDir)
	if err != nil {
		panic(err)
	}

	templates := make(map[string]*template.Template)
	for _, f := range files {
		name := f.Name()
		if path.Ext(name) != ".html" || name == baseTemplate || name == partialsTemplate {
			continue
		}
		if fragments[name] {
			templates[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templatesFS,
				path.Join(tmplDir, partialsTemplate),
				path.Join(tmplDir, name),
			))
			continue
		}
		templates[name] = template.Must(template.New(baseTemplate).Funcs(funcs).ParseFS(templatesFS,
			path.Join(tmplDir, baseTemplate),
			path.Join(tmplDir, name),
			path.Join(tmplDir, partialsTemplate),
		))
	}
	return templates
}

// pluralize picks the singular form only when n is exactly 1.
// Without an explicit plural form an "s" is appended.
func pluralize(n int, singular string, plural ...string) string {
	if n == 1 {
		return singular
	}
	if len(plural) > 0 {
		return plural[0]
	}
	if strings.HasSuffix(singular, "y") {
		return strings.TrimSuffix(singular, "y") + "ies"
	}
	return singular + "s"
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

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
