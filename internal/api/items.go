package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/erazemk/izposoja/internal/model"
	"github.com/erazemk/izposoja/internal/store"
)

const maxBodySize = 1 << 20

// ItemsHandler handles the catalog endpoints.
type ItemsHandler struct {
	Store store.Store
}

type createItemResponse struct {
	Success bool        `json:"success"`
	Item    *model.Item `json:"item"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items. A missing or non-JSON body is treated as
// an empty item, so it fails validation like any other incomplete request.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req model.NewItem
	if !isJSON(r) {
		r.Body.Close()
	} else if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		jsonError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	item, err := h.Store.Create(r.Context(), req)
	if err != nil {
		storeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusCreated, createItemResponse{Success: true, Item: item})
}

// RequestBorrow handles POST /api/items/{id}/request. The body is ignored.
func (h *ItemsHandler) RequestBorrow(w http.ResponseWriter, r *http.Request) {
	res, err := h.Store.RequestBorrow(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Image handles GET /api/items/{id}/image.
func (h *ItemsHandler) Image(w http.ResponseWriter, r *http.Request) {
	photo, err := h.Store.Photo(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		storeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", photo.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(photo.Data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(photo.Data)
}

// Health handles GET /api/health.
func (h *ItemsHandler) Health(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		jsonResponse(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"status": "ok", "items": len(items)})
}
