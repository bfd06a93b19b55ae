package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Criteria is the full set of active filter facets. The zero value (and
// DefaultCriteria) places no restriction on anything.
//
// Categories and CategoryRoute are mutually exclusive by construction: the
// flat products page populates the multi-select Categories set, the category
// detail page populates CategoryRoute from the decoded route segment.
type Criteria struct {
	Query         string
	Categories    []string
	CategoryRoute string
	Subcategory   string
	MinRating     int
	PriceMin      decimal.Decimal
	PriceMax      decimal.Decimal
	Page          int
	Latest        bool
}

// DefaultCriteria returns wide-open criteria on page 1.
func DefaultCriteria() Criteria {
	return Criteria{Page: 1}
}

// IsDefault reports whether no facet is active.
func (c Criteria) IsDefault() bool {
	return c.Query == "" && len(c.Categories) == 0 && c.CategoryRoute == "" &&
		c.Subcategory == "" && c.MinRating == 0 &&
		c.PriceMin.IsZero() && c.PriceMax.IsZero() && !c.Latest
}

// Filter computes the visible result set: the logical AND of every active
// facet, evaluated per product, preserving snapshot order. It is a pure
// function of the snapshot and criteria and never fails; filtering an empty
// or degraded snapshot yields an empty slice.
func (s *Snapshot) Filter(c Criteria) []Product {
	if s == nil {
		return nil
	}

	// Resolve the selected subcategory slug against the records once. A slug
	// that resolves to nothing matches no product, same as the source
	// behaviour where the lookup predicate comes up empty.
	var subTitle string
	subActive := c.Subcategory != ""
	if subActive {
		for _, sub := range s.Subcategories {
			if sub.Slug == c.Subcategory {
				subTitle = titleFold(sub.Title)
				break
			}
		}
	}

	routeName := titleFold(c.CategoryRoute)

	out := make([]Product, 0, len(s.Products))
	for _, p := range s.Products {
		if !matchCategories(p, c.Categories) {
			continue
		}
		if c.CategoryRoute != "" && titleFold(p.Category) != routeName {
			continue
		}
		if subActive && !matchSubcategory(p, subTitle) {
			continue
		}
		if p.Rating < c.MinRating {
			continue
		}
		if !matchPrice(p, c.PriceMin, c.PriceMax) {
			continue
		}
		if !matchSearch(p, c.Query, c.CategoryRoute != "") {
			continue
		}
		out = append(out, p)
	}
	if c.Latest {
		sortLatest(out)
	}
	return out
}

// matchCategories implements the flat-page multi-select: an empty set passes
// everything, otherwise the product's category must be one of the selected
// titles (exact match, matching the checkbox labels which are themselves
// derived from product categories).
func matchCategories(p Product, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, cat := range selected {
		if p.Category == cat {
			return true
		}
	}
	return false
}

// matchSubcategory requires the product to carry a subcategory whose title
// matches the resolved record title, case-insensitively. Products without a
// subcategory never match an active subcategory selection.
func matchSubcategory(p Product, resolvedTitle string) bool {
	if p.SubCategory == "" || resolvedTitle == "" {
		return false
	}
	return titleFold(p.SubCategory) == resolvedTitle
}

// matchPrice applies the inclusive [min, max] bound. A zero bound on either
// side means unbounded on that side; products without a price count as zero.
func matchPrice(p Product, min, max decimal.Decimal) bool {
	if min.IsPositive() && p.Price.LessThan(min) {
		return false
	}
	if max.IsPositive() && p.Price.GreaterThan(max) {
		return false
	}
	return true
}

// matchSearch is the free-text facet. The flat products page matches against
// the title only; the category page variant additionally matches the
// product's category. The two views historically behaved differently and the
// asymmetry is kept.
func matchSearch(p Product, query string, includeCategory bool) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	return includeCategory && strings.Contains(strings.ToLower(p.Category), q)
}

// Suggest returns up to limit products whose title or category contains the
// query, for the header search dropdown.
func (s *Snapshot) Suggest(query string, limit int) []Product {
	if s == nil || strings.TrimSpace(query) == "" || limit <= 0 {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Product
	for _, p := range s.Products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// CategoryTitles returns the distinct product categories in snapshot order,
// the source of the flat-page checkbox list.
func (s *Snapshot) CategoryTitles() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s.Products))
	var out []string
	for _, p := range s.Products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// FindCategory resolves a route segment to a category record, matching the
// decoded segment against the category title (trimmed, lowercased).
func (s *Snapshot) FindCategory(segment string) (Category, bool) {
	if s == nil {
		return Category{}, false
	}
	name := titleFold(CategoryNameFromRoute(segment))
	for _, cat := range s.Categories {
		if titleFold(cat.Title) == name || cat.Slug == segment {
			return cat, true
		}
	}
	return Category{}, false
}

// FindProduct resolves a product detail slug. Stored slugs win; derived
// slugs (from the stored slug, then from the title) are the fallback chain,
// mirroring how historical records without explicit slugs stay reachable.
func (s *Snapshot) FindProduct(slug string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	want := strings.ToLower(slug)
	for _, p := range s.Products {
		if strings.ToLower(p.Slug) == want {
			return p, true
		}
	}
	for _, p := range s.Products {
		if Slugify(p.Slug) == want || Slugify(p.Title) == want {
			return p, true
		}
	}
	return Product{}, false
}

// Related returns up to limit other products from the same category.
func (s *Snapshot) Related(p Product, limit int) []Product {
	if s == nil || limit <= 0 {
		return nil
	}
	var out []Product
	for _, q := range s.Products {
		if q.ID == p.ID {
			continue
		}
		if titleFold(q.Category) != titleFold(p.Category) {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}
