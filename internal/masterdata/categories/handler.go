package categories

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sk-equipments/storefront/internal/catalog"
	"github.com/sk-equipments/storefront/internal/masterdata/shared"
	internalShared "github.com/sk-equipments/storefront/internal/shared"
	"github.com/sk-equipments/storefront/internal/view"
)

type Handler struct {
	logger      *slog.Logger
	service     *Service
	templates   *view.Engine
	csrf        *internalShared.CSRFManager
	sessions    *internalShared.SessionManager
	invalidator shared.CatalogInvalidator
}

func NewHandler(
	logger *slog.Logger,
	service *Service,
	templates *view.Engine,
	csrf *internalShared.CSRFManager,
	sessions *internalShared.SessionManager,
	invalidator shared.CatalogInvalidator,
) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		templates:   templates,
		csrf:        csrf,
		sessions:    sessions,
		invalidator: invalidator,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	filters := shared.ListFilters{
		Page:   page,
		Limit:  catalog.AdminPerPage,
		Search: r.URL.Query().Get("search"),
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list categories failed", slog.Any("error", err))
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	totalPages := (total + filters.Limit - 1) / filters.Limit
	h.render(w, r, "pages/admin_categories.html", map[string]any{
		"Categories": items,
		"Filters":    filters,
		"Total":      total,
		"TotalPages": totalPages,
		"Pages":      catalog.PageWindow(page, totalPages),
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/admin_category_form.html", map[string]any{
		"Errors":   map[string]string{},
		"Category": nil,
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	category := categoryFromForm(r)
	if _, err := h.service.Create(r.Context(), category); err != nil {
		h.render(w, r, "pages/admin_category_form.html", map[string]any{
			"Errors":   map[string]string{"general": err.Error()},
			"Category": category,
		}, http.StatusBadRequest)
		return
	}

	h.invalidate(r)
	h.redirectWithFlash(w, r, "/admin/categories", "success", "Category created")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get category failed", slog.Any("error", err), slog.Int64("id", id))
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	h.render(w, r, "pages/admin_category_form.html", map[string]any{
		"Errors":   map[string]string{},
		"Category": category,
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	category := categoryFromForm(r)
	category.ID = id
	if err := h.service.Update(r.Context(), id, category); err != nil {
		h.render(w, r, "pages/admin_category_form.html", map[string]any{
			"Errors":   map[string]string{"general": err.Error()},
			"Category": category,
		}, http.StatusBadRequest)
		return
	}

	h.invalidate(r)
	h.redirectWithFlash(w, r, "/admin/categories", "success", "Category updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.redirectWithFlash(w, r, "/admin/categories", "error", err.Error())
		return
	}

	h.invalidate(r)
	h.redirectWithFlash(w, r, "/admin/categories", "success", "Category deleted")
}

func categoryFromForm(r *http.Request) Category {
	return Category{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Image:       strings.TrimSpace(r.PostFormValue("image")),
		Slug:        strings.TrimSpace(r.PostFormValue("slug")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := internalShared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *internalShared.FlashMessage
	adminUser := ""
	if sess != nil {
		flash = sess.PopFlash()
		adminUser = sess.User()
	}
	viewData := view.TemplateData{
		Title:       "Categories — Admin",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		AdminUser:   adminUser,
		Data:        data,
	}
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", template))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := internalShared.SessionFromContext(r.Context()); sess != nil {
		sess.Flash(kind, message)
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (h *Handler) invalidate(r *http.Request) {
	if h.invalidator == nil {
		return
	}
	if err := h.invalidator.InvalidateCatalog(r.Context()); err != nil {
		h.logger.Warn("enqueue catalog invalidation", slog.Any("error", err))
	}
}
