package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawProduct mirrors the loosely-shaped documents the catalog historically
// stored: optional fields, prices that may be numbers or strings with
// thousands separators, ratings that may be absent. Normalisation turns it
// into a fully-typed Product exactly once, at the ingestion boundary, so the
// filter predicates never carry defensive nil checks.
type RawProduct struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Image            string          `json:"image"`
	AdditionalImages []string        `json:"additionalImages"`
	Price            json.RawMessage `json:"price"`
	OriginalPrice    string          `json:"originalPrice"`
	Rating           *int            `json:"rating"`
	Reviews          *int            `json:"reviews"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"subCategory"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	Specifications   []string        `json:"specifications"`
	IsBestSelling    bool            `json:"isBestSelling"`
	IsFeatured       bool            `json:"isFeatured"`
	CreatedAt        string          `json:"createdAt"`
}

// Normalize converts a raw record into a typed Product, substituting defaults
// for anything missing or malformed. It never fails: an unparseable price is
// zero, an unparseable createdAt is the zero time (which sorts last in the
// "latest" view).
func (r RawProduct) Normalize() Product {
	p := Product{
		ID:               r.ID,
		Title:            strings.TrimSpace(r.Title),
		Image:            r.Image,
		AdditionalImages: r.AdditionalImages,
		OriginalPrice:    r.OriginalPrice,
		Category:         strings.TrimSpace(r.Category),
		SubCategory:      strings.TrimSpace(r.SubCategory),
		Slug:             strings.TrimSpace(r.Slug),
		Description:      r.Description,
		Specifications:   r.Specifications,
		IsBestSelling:    r.IsBestSelling,
		IsFeatured:       r.IsFeatured,
	}
	if r.Rating != nil {
		p.Rating = clampRating(*r.Rating)
	}
	if r.Reviews != nil && *r.Reviews > 0 {
		p.Reviews = *r.Reviews
	}
	p.Price, p.HasPrice = parseRawPrice(r.Price)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if r.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
			p.CreatedAt = t
		}
	}
	return p
}

// ParsePrice interprets a price string that may carry thousands separators
// ("1,22,000" or "12 500.50"). Unparseable or empty input is zero.
func ParsePrice(s string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseRawPrice accepts the historical mixed shapes: JSON number, JSON string
// with separators, or absent.
func parseRawPrice(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParsePrice(s)
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err == nil {
		return d, true
	}
	return decimal.Zero, false
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
