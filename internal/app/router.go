package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sk-equipments/storefront/internal/api"
	"github.com/sk-equipments/storefront/internal/auth"
	"github.com/sk-equipments/storefront/internal/masterdata"
	"github.com/sk-equipments/storefront/internal/masterdata/categories"
	"github.com/sk-equipments/storefront/internal/masterdata/products"
	"github.com/sk-equipments/storefront/internal/masterdata/subcategories"
	"github.com/sk-equipments/storefront/internal/media"
	"github.com/sk-equipments/storefront/internal/observability"
	"github.com/sk-equipments/storefront/internal/shared"
	"github.com/sk-equipments/storefront/internal/store"
	"github.com/sk-equipments/storefront/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics

	StoreHandler       *store.Handler
	AuthHandler        *auth.Handler
	APIHandler         *api.Handler
	MediaHandler       *media.Handler
	ProductHandler     *products.Handler
	CategoryHandler    *categories.Handler
	SubcategoryHandler *subcategories.Handler
}

// NewRouter constructs the chi.Router with storefront defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Handle("/metrics", params.Metrics.Handler())
	}

	// Public storefront.
	params.StoreHandler.MountRoutes(r)

	// Public JSON reads.
	r.Route("/api", func(r chi.Router) {
		params.APIHandler.MountPublic(r)

		// JSON writes require the admin session.
		r.Group(func(r chi.Router) {
			r.Use(params.AuthHandler.RequireAdmin)
			params.APIHandler.MountAdmin(r)
		})
	})

	// Admin back-office.
	r.Route("/admin", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthHandler.RequireAdmin)
			masterdata.MountRoutes(r, params.ProductHandler, params.CategoryHandler, params.SubcategoryHandler)
			r.Post("/upload", params.MediaHandler.Upload)
		})
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		next.ServeHTTP(w, r)
	})
}
