// Package masterdata groups the admin CRUD surfaces for products, categories
// and subcategories under a single route mount.
package masterdata

import (
	"github.com/go-chi/chi/v5"

	"github.com/sk-equipments/storefront/internal/masterdata/categories"
	"github.com/sk-equipments/storefront/internal/masterdata/products"
	"github.com/sk-equipments/storefront/internal/masterdata/subcategories"
)

// MountRoutes registers the admin CRUD routes. Callers are expected to wrap
// the router with the session gate before mounting.
func MountRoutes(r chi.Router, p *products.Handler, c *categories.Handler, s *subcategories.Handler) {
	r.Get("/products", p.List)
	r.Get("/products/new", p.Form)
	r.Post("/products", p.Create)
	r.Get("/products/{id}/edit", p.EditForm)
	r.Post("/products/{id}/edit", p.Update)
	r.Post("/products/{id}/delete", p.Delete)

	r.Get("/categories", c.List)
	r.Get("/categories/new", c.Form)
	r.Post("/categories", c.Create)
	r.Get("/categories/{id}/edit", c.EditForm)
	r.Post("/categories/{id}/edit", c.Update)
	r.Post("/categories/{id}/delete", c.Delete)

	r.Get("/subcategories", s.List)
	r.Get("/subcategories/new", s.Form)
	r.Post("/subcategories", s.Create)
	r.Get("/subcategories/{id}/edit", s.EditForm)
	r.Post("/subcategories/{id}/edit", s.Update)
	r.Post("/subcategories/{id}/delete", s.Delete)
}
