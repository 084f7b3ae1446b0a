package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/izposoja/internal/model"
	"github.com/erazemk/izposoja/internal/store"
)

// Error messages returned in {"error": ...} bodies.
const (
	msgItemNotFound    = "Item not found"
	msgMissingFields   = "Missing required fields"
	msgInvalidBody     = "Invalid request body"
	msgNotAvailable    = "Item is not available"
	msgInternal        = "Internal server error"
	msgTooManyRequests = "Too many requests"
	msgNotFound        = "Not found"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// isJSON reports whether the request declares a JSON body.
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// storeError maps a store error onto its HTTP response. Unexpected errors
// are logged and reported as 500.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, http.StatusBadRequest, msgMissingFields)
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, msgItemNotFound)
	case errors.Is(err, store.ErrUnavailable):
		jsonError(w, http.StatusBadRequest, msgNotAvailable)
	default:
		slog.Error("store operation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		jsonError(w, http.StatusInternalServerError, msgInternal)
	}
}
