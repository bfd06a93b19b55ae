// Package api exposes the catalog as JSON: public read endpoints backed by
// the snapshot, and admin write endpoints that accept the historical
// loosely-shaped product documents.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sk-equipments/storefront/internal/catalog"
	"github.com/sk-equipments/storefront/internal/masterdata/categories"
	"github.com/sk-equipments/storefront/internal/masterdata/products"
	"github.com/sk-equipments/storefront/internal/masterdata/shared"
	"github.com/sk-equipments/storefront/internal/masterdata/subcategories"
	"github.com/sk-equipments/storefront/internal/platform/httpx"
)

// SnapshotProvider yields the catalog snapshot the read endpoints serve.
type SnapshotProvider interface {
	Load(ctx context.Context) *catalog.Snapshot
}

// Handler serves the JSON API.
type Handler struct {
	logger      *slog.Logger
	snapshots   SnapshotProvider
	products    *products.Service
	categories  *categories.Service
	subs        *subcategories.Service
	invalidator shared.CatalogInvalidator
	pruner      shared.MediaPruner
}

// NewHandler constructs a Handler.
func NewHandler(
	logger *slog.Logger,
	snapshots SnapshotProvider,
	productService *products.Service,
	categoryService *categories.Service,
	subcategoryService *subcategories.Service,
	invalidator shared.CatalogInvalidator,
	pruner shared.MediaPruner,
) *Handler {
	return &Handler{
		logger:      logger,
		snapshots:   snapshots,
		products:    productService,
		categories:  categoryService,
		subs:        subcategoryService,
		invalidator: invalidator,
		pruner:      pruner,
	}
}

// MountPublic registers the read-only endpoints.
func (h *Handler) MountPublic(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/categories", h.listCategories)
	r.Get("/subcategories", h.listSubcategories)
}

// MountAdmin registers the write endpoints. Callers wrap the router with the
// session gate.
func (h *Handler) MountAdmin(r chi.Router) {
	r.Post("/products", h.createProduct)
	r.Put("/products/{id}", h.updateProduct)
	r.Delete("/products/{id}", h.deleteProduct)

	r.Post("/categories", h.createCategory)
	r.Put("/categories/{id}", h.updateCategory)
	r.Delete("/categories/{id}", h.deleteCategory)

	r.Post("/subcategories", h.createSubcategory)
	r.Put("/subcategories/{id}", h.updateSubcategory)
	r.Delete("/subcategories/{id}", h.deleteSubcategory)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())
	criteria := catalog.ParseCriteria(r.URL.Query())
	httpx.JSON(w, http.StatusOK, map[string]any{"products": snap.Filter(criteria)})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": snap.Categories})
}

func (h *Handler) listSubcategories(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{"subcategories": snap.Subcategories})
}

// toWriteModel turns a normalised catalog record into the masterdata write
// model.
func toWriteModel(p catalog.Product) products.Product {
	out := products.Product{
		Title:            p.Title,
		Image:            p.Image,
		AdditionalImages: p.AdditionalImages,
		OriginalPrice:    p.OriginalPrice,
		Rating:           p.Rating,
		Reviews:          p.Reviews,
		Category:         p.Category,
		SubCategory:      p.SubCategory,
		Slug:             p.Slug,
		Description:      p.Description,
		Specifications:   p.Specifications,
		IsBestSelling:    p.IsBestSelling,
		IsFeatured:       p.IsFeatured,
	}
	if p.HasPrice {
		price := p.Price
		out.Price = &price
	}
	return out
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var raw catalog.RawProduct
	if err := httpx.DecodeJSON(r, &raw); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	created, err := h.products.Create(r.Context(), toWriteModel(raw.Normalize()))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "id": created.ID, "slug": created.Slug})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}

	var raw catalog.RawProduct
	if err := httpx.DecodeJSON(r, &raw); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	previous, prevErr := h.products.Get(r.Context(), id)

	updated := toWriteModel(raw.Normalize())
	if err := h.products.Update(r.Context(), id, updated); err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	if prevErr == nil {
		h.prune(r, products.OrphanedImageURLs(previous, updated))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}

	previous, prevErr := h.products.Get(r.Context(), id)

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	if prevErr == nil {
		h.prune(r, products.ImageURLs(previous))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

type categoryPayload struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	created, err := h.categories.Create(r.Context(), categories.Category{
		Title:       payload.Title,
		Image:       payload.Image,
		Slug:        payload.Slug,
		Description: payload.Description,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "id": created.ID, "slug": created.Slug})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}

	var payload categoryPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	if err := h.categories.Update(r.Context(), id, categories.Category{
		Title:       payload.Title,
		Image:       payload.Image,
		Slug:        payload.Slug,
		Description: payload.Description,
	}); err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

type subcategoryPayload struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

func (h *Handler) createSubcategory(w http.ResponseWriter, r *http.Request) {
	var payload subcategoryPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	created, err := h.subs.Create(r.Context(), subcategories.SubCategory{
		Title:    payload.Title,
		Category: payload.Category,
		Slug:     payload.Slug,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "id": created.ID, "slug": created.Slug})
}

func (h *Handler) updateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}

	var payload subcategoryPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	if err := h.subs.Update(r.Context(), id, subcategories.SubCategory{
		Title:    payload.Title,
		Category: payload.Category,
		Slug:     payload.Slug,
	}); err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) deleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "")
		return
	}

	if err := h.subs.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	h.invalidate(r)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// respondError maps masterdata sentinels onto problem responses.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrRequiredField), errors.Is(err, shared.ErrInvalidID):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInUse):
		httpx.Problem(w, http.StatusConflict, "In Use", err.Error())
	default:
		h.logger.Error("api request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
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
