package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the PostgreSQL-backed Source. Fetch order is fixed at query
// time (created_at descending, then id) and establishes the baseline order
// the filter engine preserves.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Products returns every product, normalised.
func (r *Repository) Products(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, image, additional_images, COALESCE(price::text, ''),
		       original_price, rating, reviews, category,
		       COALESCE(sub_category, ''), slug, description, specifications,
		       is_best_selling, is_featured, created_at
		FROM products
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		var price string
		if err := rows.Scan(&p.ID, &p.Title, &p.Image, &p.AdditionalImages,
			&price, &p.OriginalPrice, &p.Rating, &p.Reviews, &p.Category,
			&p.SubCategory, &p.Slug, &p.Description, &p.Specifications,
			&p.IsBestSelling, &p.IsFeatured, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Price, p.HasPrice = ParsePrice(price)
		p.Rating = clampRating(p.Rating)
		if p.Slug == "" {
			p.Slug = Slugify(p.Title)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Categories returns every category in creation order.
func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, image, slug, description
		FROM categories
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Image, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		if c.Slug == "" {
			c.Slug = Slugify(c.Title)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Subcategories returns every subcategory in creation order, which is the
// insertion order the sidebar hierarchy preserves.
func (r *Repository) Subcategories(ctx context.Context) ([]SubCategory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, category, slug
		FROM subcategories
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []SubCategory
	for rows.Next() {
		var s SubCategory
		if err := rows.Scan(&s.ID, &s.Title, &s.Category, &s.Slug); err != nil {
			return nil, err
		}
		if s.Slug == "" {
			s.Slug = Slugify(s.Title)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
