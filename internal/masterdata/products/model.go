package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the administrative write model. Price is nil when the product
// has no published price ("price on request").
type Product struct {
	ID               int64
	Title            string
	Image            string
	AdditionalImages []string
	Price            *decimal.Decimal
	OriginalPrice    string
	Rating           int
	Reviews          int
	Category         string
	SubCategory      string
	Slug             string
	Description      string
	Specifications   []string
	IsBestSelling    bool
	IsFeatured       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ImageURLs lists every image URL the product references, primary first.
func ImageURLs(p Product) []string {
	urls := make([]string, 0, len(p.AdditionalImages)+1)
	if p.Image != "" {
		urls = append(urls, p.Image)
	}
	urls = append(urls, p.AdditionalImages...)
	return urls
}

// OrphanedImageURLs returns the previous record's image URLs the updated
// record no longer references. Those are safe to prune from the image host.
func OrphanedImageURLs(previous, updated Product) []string {
	kept := make(map[string]struct{})
	for _, u := range ImageURLs(updated) {
		kept[u] = struct{}{}
	}
	var orphaned []string
	for _, u := range ImageURLs(previous) {
		if _, ok := kept[u]; !ok {
			orphaned = append(orphaned, u)
		}
	}
	return orphaned
}
