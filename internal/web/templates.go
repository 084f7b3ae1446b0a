package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/izposoja/internal/model"
	webembed "github.com/erazemk/izposoja/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// initials turns "Alice Johnson" into "AJ" for the owner avatar.
		"initials": func(name string) string {
			var b strings.Builder
			for _, part := range strings.Fields(name) {
				r := []rune(part)
				b.WriteRune(r[0])
			}
			return strings.ToUpper(b.String())
		},
		"availability": func(available bool) string {
			if available {
				return "Available"
			}
			return "Borrowed"
		},
		// card bundles an item with the page a borrow request returns to.
		"card": func(item model.Item, next string) cardData {
			return cardData{Item: item, Next: next}
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

var pages = []string{
	"home.html",
	"item_detail.html",
	"item_new.html",
	"not_found.html",
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.Templates

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}
	cardBytes, err := fs.ReadFile(tfs, "item_card.html")
	if err != nil {
		return nil, fmt.Errorf("reading item card template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		for _, src := range []string{string(layoutBytes), string(cardBytes), string(pageBytes)} {
			if tmpl, err = tmpl.Parse(src); err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", page, err)
			}
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a page with the given status code.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

type cardData struct {
	Item model.Item
	Next string
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title  string
	Path   string
	Notice string
	Error  string
	// Live makes the page reload when the catalog changes.
	Live bool
}

func pageData(r *http.Request, title string) PageData {
	q := r.URL.Query()
	return PageData{
		Title:  title,
		Path:   r.URL.Path,
		Notice: q.Get("notice"),
		Error:  q.Get("error"),
	}
}
