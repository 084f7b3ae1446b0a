package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/erazemk/izposoja/internal/catalog"
	"github.com/erazemk/izposoja/internal/imaging"
	"github.com/erazemk/izposoja/internal/model"
	"github.com/erazemk/izposoja/internal/store"
)

// Browse view modes.
const (
	viewGrid = "grid"
	viewList = "list"
)

// HomePage handles GET /: the filtered catalog.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.List(r.Context())
	if err != nil {
		slog.Error("failed to list items", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	params := r.URL.Query()
	query := catalog.QueryFromValues(params)
	view := params.Get("view")
	if view != viewList {
		view = viewGrid
	}

	categories := catalog.Categories(items)
	if query.Category != catalog.All && !slices.Contains(categories, query.Category) {
		categories = append(categories, query.Category)
	}

	data := pageData(r, "Neighborhood Items")
	data.Live = true

	s.Templates.Render(w, http.StatusOK, "home.html", &struct {
		PageData
		Items      []model.Item
		Total      int
		Query      catalog.Query
		Categories []string
		View       string
		GridURL    string
		ListURL    string
		Next       string
		Filtered   bool
	}{
		PageData:   data,
		Items:      catalog.Filter(items, query),
		Total:      len(items),
		Query:      query,
		Categories: categories,
		View:       view,
		GridURL:    browseURL(query, viewGrid),
		ListURL:    browseURL(query, viewList),
		Next:       browseURL(query, view),
		Filtered:   !query.IsDefault(),
	})
}

// browseURL links to the home page with query and view preserved.
func browseURL(q catalog.Query, view string) string {
	v := q.Values()
	if view != viewGrid {
		v.Set("view", view)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// ItemDetailPage handles GET /items/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	item, err := s.Store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(w, r, "Item not found", "The item you're looking for doesn't exist.")
		return
	}
	if err != nil {
		slog.Error("failed to get item", "id", r.PathValue("id"), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData(r, item.Name)
	data.Live = true

	s.Templates.Render(w, http.StatusOK, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: data,
		Item:     item,
	})
}

// BorrowSubmit handles POST /items/{id}/request from the detail page and
// the browse cards. A local "next" form value picks the page to return to.
func (s *Server) BorrowSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	back := localPath(r.FormValue("next"), "/items/"+url.PathEscape(id))

	if !s.allow(r) {
		redirectWith(w, r, back, "error", "Too many requests, try again shortly")
		return
	}

	res, err := s.Store.RequestBorrow(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.notFound(w, r, "Item not found", "The item you're looking for doesn't exist.")
	case errors.Is(err, store.ErrUnavailable):
		redirectWith(w, r, back, "error", "Item is not available")
	case err != nil:
		slog.Error("failed to request item", "id", id, "error", err)
		redirectWith(w, r, back, "error", "Failed to request item")
	default:
		slog.Info("item borrowed", "id", id, "borrower", model.CurrentUser)
		redirectWith(w, r, back, "notice", res.Message)
	}
}

type itemForm struct {
	PageData
	Form       model.NewItem
	Categories []string
	Conditions []string
	MaxPhotoMB int
}

func (s *Server) renderItemForm(w http.ResponseWriter, r *http.Request, status int, form model.NewItem, errMsg string) {
	data := pageData(r, "Add New Item")
	if errMsg != "" {
		data.Error = errMsg
	}
	s.Templates.Render(w, status, "item_new.html", &itemForm{
		PageData:   data,
		Form:       form,
		Categories: model.Categories,
		Conditions: model.Conditions,
		MaxPhotoMB: imaging.MaxUploadSize >> 20,
	})
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	s.renderItemForm(w, r, http.StatusOK, model.NewItem{}, "")
}

// ItemCreateSubmit handles POST /items/new. The form may be multipart with
// an optional photo, or plain urlencoded.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+(1<<20))
	err := r.ParseMultipartForm(1 << 20)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.renderItemForm(w, r, http.StatusBadRequest, model.NewItem{}, "The upload is too large or malformed")
		return
	}

	form := model.NewItem{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Condition:   r.FormValue("condition"),
		Image:       r.FormValue("image"),
	}

	if !s.allow(r) {
		s.renderItemForm(w, r, http.StatusTooManyRequests, form, "Too many requests, try again shortly")
		return
	}

	if err := form.Validate(); err != nil {
		s.renderItemForm(w, r, http.StatusBadRequest, form, "Please fill in all required fields")
		return
	}

	if r.MultipartForm != nil {
		file, _, err := r.FormFile("photo")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			s.renderItemForm(w, r, http.StatusBadRequest, form, "Could not read the photo")
			return
		default:
			defer file.Close()
			photo, err := imaging.ItemPhoto(file)
			if err != nil {
				slog.Warn("rejected item photo", "error", err)
				s.renderItemForm(w, r, http.StatusBadRequest, form, "The photo must be a JPEG, PNG or WebP image")
				return
			}
			form.Photo = photo
		}
	}

	item, err := s.Store.Create(r.Context(), form)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		s.renderItemForm(w, r, http.StatusInternalServerError, form, "Failed to add item")
		return
	}

	slog.Info("item created", "id", item.ID, "name", item.Name, "photo", form.Photo != nil)
	redirectWith(w, r, "/", "notice", "Item added successfully!")
}

// NotFoundPage renders the 404 page for unknown paths.
func (s *Server) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	s.notFound(w, r, "Page not found", "Sorry, the page you're looking for doesn't exist.")
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, heading, message string) {
	s.Templates.Render(w, http.StatusNotFound, "not_found.html", &struct {
		PageData
		Heading string
		Message string
	}{
		PageData: pageData(r, heading),
		Heading:  heading,
		Message:  message,
	})
}
