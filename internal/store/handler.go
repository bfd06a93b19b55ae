// Package store serves the public storefront pages: home, product listings,
// category pages, product detail and search suggestions.
package store

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sk-equipments/storefront/internal/catalog"
	"github.com/sk-equipments/storefront/internal/platform/httpx"
	"github.com/sk-equipments/storefront/internal/shared"
	"github.com/sk-equipments/storefront/internal/view"
)

const (
	suggestLimit = 6
	relatedLimit = 4
	homeRowLimit = 8
)

// SnapshotProvider yields the catalog snapshot a page view filters against.
type SnapshotProvider interface {
	Load(ctx context.Context) *catalog.Snapshot
}

// Handler renders the public storefront.
type Handler struct {
	logger         *slog.Logger
	snapshots      SnapshotProvider
	templates      *view.Engine
	csrf           *shared.CSRFManager
	whatsAppNumber string
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, snapshots SnapshotProvider, templates *view.Engine, csrf *shared.CSRFManager, whatsAppNumber string) *Handler {
	return &Handler{
		logger:         logger,
		snapshots:      snapshots,
		templates:      templates,
		csrf:           csrf,
		whatsAppNumber: whatsAppNumber,
	}
}

// MountRoutes registers the public routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/products", h.products)
	r.Get("/category/{slug}", h.category)
	r.Get("/product/{slug}", h.productDetail)
	r.Get("/search/suggest", h.suggest)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())

	latest := snap.Filter(catalog.Criteria{Latest: true})
	if len(latest) > homeRowLimit {
		latest = latest[:homeRowLimit]
	}

	h.render(w, r, "pages/home.html", "Industrial Testing Instruments", map[string]any{
		"Categories":  snap.Categories,
		"Featured":    pick(snap.Products, homeRowLimit, func(p catalog.Product) bool { return p.IsFeatured }),
		"BestSelling": pick(snap.Products, homeRowLimit, func(p catalog.Product) bool { return p.IsBestSelling }),
		"Latest":      latest,
	}, http.StatusOK)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())
	criteria := catalog.ParseCriteria(r.URL.Query())

	results := snap.Filter(criteria)
	page := catalog.Paginate(results, criteria.Page, catalog.ProductsPerPage)

	h.render(w, r, "pages/products.html", "All Products", map[string]any{
		"Page":    page,
		"Pager":   buildPager("/products", criteria, page),
		"Filters": buildFilterState("/products", criteria, snap, ""),
		"Summary": resultSummary(page),
	}, http.StatusOK)
}

func (h *Handler) category(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())
	slug := chi.URLParam(r, "slug")

	cat, ok := snap.FindCategory(slug)
	if !ok {
		h.notFound(w, r)
		return
	}

	criteria := catalog.ParseCriteria(r.URL.Query())
	criteria.CategoryRoute = catalog.CategoryNameFromRoute(slug)

	results := snap.Filter(criteria)
	page := catalog.Paginate(results, criteria.Page, catalog.CategoryPerPage)

	base := "/category/" + slug

	h.render(w, r, "pages/category.html", cat.Title, map[string]any{
		"Category": cat,
		"Page":     page,
		"Pager":    buildPager(base, criteria, page),
		"Filters":  buildFilterState(base, criteria, snap, cat.Title),
		"Summary":  resultSummary(page),
	}, http.StatusOK)
}

func (h *Handler) productDetail(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())
	slug := chi.URLParam(r, "slug")

	product, ok := snap.FindProduct(slug)
	if !ok {
		h.notFound(w, r)
		return
	}

	h.render(w, r, "pages/product_detail.html", product.Title, map[string]any{
		"Product":      product,
		"Related":      snap.Related(product, relatedLimit),
		"WhatsAppLink": h.whatsAppLink(product),
	}, http.StatusOK)
}

type suggestion struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Load(r.Context())
	query := r.URL.Query().Get("q")

	matches := snap.Suggest(query, suggestLimit)
	out := make([]suggestion, 0, len(matches))
	for _, p := range matches {
		out = append(out, suggestion{
			Title:    p.Title,
			Slug:     p.Slug,
			Image:    p.Image,
			Category: p.Category,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"suggestions": out})
}

// whatsAppLink builds the "order on WhatsApp" deep link for a product.
func (h *Handler) whatsAppLink(p catalog.Product) string {
	if h.whatsAppNumber == "" {
		return ""
	}
	msg := "Hi, I am interested in " + p.Title
	return "https://wa.me/" + h.whatsAppNumber + "?text=" + url.QueryEscape(msg)
}

func pick(products []catalog.Product, limit int, keep func(catalog.Product) bool) []catalog.Product {
	var out []catalog.Product
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/not_found.html", "Not Found", nil, http.StatusNotFound)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken := ""
	if h.csrf != nil {
		csrfToken, _ = h.csrf.EnsureToken(r.Context(), sess)
	}
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", template))
	}
}
