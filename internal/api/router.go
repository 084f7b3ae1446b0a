package api

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/erazemk/izposoja/internal/store"
)

// Options configures the API router.
type Options struct {
	// CORSOrigins lists allowed origins; "*" or an empty list allows all.
	CORSOrigins []string
	// Limiter throttles write endpoints. Nil disables throttling.
	Limiter *RateLimiter
	// Events serves the websocket change feed when set.
	Events http.Handler
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(s store.Store, opts Options) http.Handler {
	mux := http.NewServeMux()

	items := &ItemsHandler{Store: s}

	mux.HandleFunc("GET /api/items", items.List)
	mux.Handle("POST /api/items", opts.Limiter.Limit(http.HandlerFunc(items.Create)))
	mux.HandleFunc("GET /api/items/{id}", items.Get)
	mux.Handle("POST /api/items/{id}/request", opts.Limiter.Limit(http.HandlerFunc(items.RequestBorrow)))
	mux.HandleFunc("GET /api/items/{id}/image", items.Image)
	mux.HandleFunc("GET /api/health", items.Health)

	if opts.Events != nil {
		mux.Handle("GET /api/events", opts.Events)
	}

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, http.StatusNotFound, msgNotFound)
	})

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(mux)
}
