package web

import (
	"net/http"

	"github.com/erazemk/izposoja/internal/store"
	webembed "github.com/erazemk/izposoja/web"
)

// Limiter throttles form submissions.
type Limiter interface {
	Allow(r *http.Request) bool
}

// Server holds all dependencies for page handlers.
type Server struct {
	Store     store.Store
	Templates *Templates
	Limiter   Limiter
}

// NewRouter creates the web page router with all page routes registered.
// A nil limiter disables throttling.
func NewRouter(s store.Store, limiter Limiter) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		Store:     s,
		Templates: templates,
		Limiter:   limiter,
	}

	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.Static))))

	mux.HandleFunc("GET /{$}", srv.HomePage)
	mux.HandleFunc("GET /items/new", srv.ItemNewPage)
	mux.HandleFunc("POST /items/new", srv.ItemCreateSubmit)
	mux.HandleFunc("GET /items/{id}", srv.ItemDetailPage)
	mux.HandleFunc("POST /items/{id}/request", srv.BorrowSubmit)

	mux.Handle("GET /add-item", http.RedirectHandler("/items/new", http.StatusMovedPermanently))

	mux.HandleFunc("/", srv.NotFoundPage)

	return mux, nil
}

func (s *Server) allow(r *http.Request) bool {
	return s.Limiter == nil || s.Limiter.Allow(r)
}
