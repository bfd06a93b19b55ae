// Package catalog implements the storefront catalog: typed product records,
// the filter engine that derives the visible result set from a snapshot and
// a set of criteria, hierarchy resolution and pagination windowing.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a fully-typed catalog record. Records are normalised at the
// ingestion boundary, so every field here is safe to read without nil checks.
type Product struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Image            string          `json:"image"`
	AdditionalImages []string        `json:"additionalImages,omitempty"`
	Price            decimal.Decimal `json:"price"`
	HasPrice         bool            `json:"hasPrice"`
	OriginalPrice    string          `json:"originalPrice,omitempty"`
	Rating           int             `json:"rating"`
	Reviews          int             `json:"reviews"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"subCategory,omitempty"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description,omitempty"`
	Specifications   []string        `json:"specifications,omitempty"`
	IsBestSelling    bool            `json:"isBestSelling"`
	IsFeatured       bool            `json:"isFeatured"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Category is a top-level catalog grouping. Products reference categories by
// title, not by id; the title doubles as the join key throughout the engine.
type Category struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// SubCategory belongs to a category through the parent category's title.
type SubCategory struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// Snapshot is the in-memory copy of the full catalog a page view filters
// against. It is loaded once per request (or served from the snapshot cache)
// and never mutated by the engine.
type Snapshot struct {
	Products      []Product     `json:"products"`
	Categories    []Category    `json:"categories"`
	Subcategories []SubCategory `json:"subcategories"`
}
