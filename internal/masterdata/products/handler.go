package products

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sk-equipments/storefront/internal/catalog"
	"github.com/sk-equipments/storefront/internal/masterdata/categories"
	"github.com/sk-equipments/storefront/internal/masterdata/shared"
	"github.com/sk-equipments/storefront/internal/masterdata/subcategories"
	internalShared "github.com/sk-equipments/storefront/internal/shared"
	"github.com/sk-equipments/storefront/internal/view"
)

type Handler struct {
	logger             *slog.Logger
	service            *Service
	categoryService    *categories.Service
	subcategoryService *subcategories.Service
	templates          *view.Engine
	csrf               *internalShared.CSRFManager
	sessions           *internalShared.SessionManager
	invalidator        shared.CatalogInvalidator
	pruner             shared.MediaPruner
}

func NewHandler(
	logger *slog.Logger,
	service *Service,
	categoryService *categories.Service,
	subcategoryService *subcategories.Service,
	templates *view.Engine,
	csrf *internalShared.CSRFManager,
	sessions *internalShared.SessionManager,
	invalidator shared.CatalogInvalidator,
	pruner shared.MediaPruner,
) *Handler {
	return &Handler{
		logger:             logger,
		service:            service,
		categoryService:    categoryService,
		subcategoryService: subcategoryService,
		templates:          templates,
		csrf:               csrf,
		sessions:           sessions,
		invalidator:        invalidator,
		pruner:             pruner,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	filters := shared.ListFilters{
		Page:     page,
		Limit:    catalog.AdminPerPage,
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products failed", slog.Any("error", err))
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	totalPages := (total + filters.Limit - 1) / filters.Limit
	cats, _, _ := h.categoryService.List(r.Context(), shared.ListFilters{})

	h.render(w, r, "pages/admin_products.html", map[string]any{
		"Products":   items,
		"Filters":    filters,
		"Total":      total,
		"TotalPages": totalPages,
		"Pages":      catalog.PageWindow(page, totalPages),
		"Categories": cats,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, map[string]string{}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	product := productFromForm(r)
	created, err := h.service.Create(r.Context(), product)
	if err != nil {
		h.renderForm(w, r, &product, map[string]string{"general": err.Error()}, http.StatusBadRequest)
		return
	}

	h.invalidate(r)
	h.logger.Info("product created", slog.Int64("id", created.ID), slog.String("slug", created.Slug))
	h.redirectWithFlash(w, r, "/admin/products", "success", "Product created")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get product failed", slog.Any("error", err), slog.Int64("id", id))
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	h.renderForm(w, r, &product, map[string]string{}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	previous, prevErr := h.service.Get(r.Context(), id)

	product := productFromForm(r)
	product.ID = id
	if err := h.service.Update(r.Context(), id, product); err != nil {
		h.renderForm(w, r, &product, map[string]string{"general": err.Error()}, http.StatusBadRequest)
		return
	}

	h.invalidate(r)
	if prevErr == nil {
		h.prune(r, OrphanedImageURLs(previous, product))
	}
	h.redirectWithFlash(w, r, "/admin/products", "success", "Product updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	previous, prevErr := h.service.Get(r.Context(), id)

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.redirectWithFlash(w, r, "/admin/products", "error", err.Error())
		return
	}

	h.invalidate(r)
	if prevErr == nil {
		h.prune(r, ImageURLs(previous))
	}
	h.redirectWithFlash(w, r, "/admin/products", "success", "Product deleted")
}

// productFromForm maps the posted admin form onto the write model. Multi-value
// fields arrive as newline-separated textareas.
func productFromForm(r *http.Request) Product {
	rating, _ := strconv.Atoi(r.PostFormValue("rating"))
	reviews, _ := strconv.Atoi(r.PostFormValue("reviews"))

	p := Product{
		Title:            strings.TrimSpace(r.PostFormValue("title")),
		Image:            strings.TrimSpace(r.PostFormValue("image")),
		AdditionalImages: splitLines(r.PostFormValue("additional_images")),
		OriginalPrice:    strings.TrimSpace(r.PostFormValue("original_price")),
		Rating:           rating,
		Reviews:          reviews,
		Category:         strings.TrimSpace(r.PostFormValue("category")),
		SubCategory:      strings.TrimSpace(r.PostFormValue("sub_category")),
		Slug:             strings.TrimSpace(r.PostFormValue("slug")),
		Description:      strings.TrimSpace(r.PostFormValue("description")),
		Specifications:   splitLines(r.PostFormValue("specifications")),
		IsBestSelling:    r.PostFormValue("is_best_selling") == "on",
		IsFeatured:       r.PostFormValue("is_featured") == "on",
	}
	if raw := strings.TrimSpace(r.PostFormValue("price")); raw != "" {
		if d, ok := catalog.ParsePrice(raw); ok {
			p.Price = &d
		}
	}
	return p
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, product *Product, errs map[string]string, status int) {
	cats, _, _ := h.categoryService.List(r.Context(), shared.ListFilters{})
	subs, _, _ := h.subcategoryService.List(r.Context(), shared.ListFilters{})
	h.render(w, r, "pages/admin_product_form.html", map[string]any{
		"Errors":        errs,
		"Product":       product,
		"Categories":    cats,
		"Subcategories": subs,
	}, status)
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
		Title:       "Products — Admin",
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

// prune is best effort: a failed enqueue leaves an orphan on the image host,
// never a failed write.
func (h *Handler) prune(r *http.Request, imageURLs []string) {
	if h.pruner == nil || len(imageURLs) == 0 {
		return
	}
	if err := h.pruner.PruneMedia(r.Context(), imageURLs); err != nil {
		h.logger.Warn("enqueue media prune", slog.Any("error", err))
	}
}
