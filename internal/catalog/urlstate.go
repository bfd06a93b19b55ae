package catalog

import (
	"net/url"
	"strconv"
)

// Query parameter names shared by the storefront views. The filtered view
// must stay a shareable link, so every active facet round-trips through the
// URL.
const (
	ParamQuery       = "q"
	ParamCategory    = "categories"
	ParamSubcategory = "subcategory"
	ParamRating      = "rating"
	ParamPriceMin    = "price_min"
	ParamPriceMax    = "price_max"
	ParamPage        = "page"
	ParamSort        = "sort"

	// SortLatest is the only non-default sort: newest first.
	SortLatest = "latest"
)

// ParseCriteria reads filter state from request query parameters. Unparseable
// values fall back to the default for that facet rather than failing the
// request. Page floors at 1; the final clamp against totalPages happens in
// Paginate once the filtered count is known.
func ParseCriteria(values url.Values) Criteria {
	c := DefaultCriteria()
	c.Query = values.Get(ParamQuery)
	if cats, ok := values[ParamCategory]; ok {
		for _, cat := range cats {
			if cat != "" {
				c.Categories = append(c.Categories, cat)
			}
		}
	}
	c.Subcategory = values.Get(ParamSubcategory)
	if r, err := strconv.Atoi(values.Get(ParamRating)); err == nil {
		c.MinRating = clampRating(r)
	}
	if min, ok := ParsePrice(values.Get(ParamPriceMin)); ok {
		c.PriceMin = min
	}
	if max, ok := ParsePrice(values.Get(ParamPriceMax)); ok {
		c.PriceMax = max
	}
	if p, err := strconv.Atoi(values.Get(ParamPage)); err == nil && p > 1 {
		c.Page = p
	}
	c.Latest = values.Get(ParamSort) == SortLatest
	return c
}

// Values encodes the criteria back into query parameters. Defaults are
// omitted so untouched facets leave no trace in the URL. Page is encoded
// only past page 1.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.Query != "" {
		v.Set(ParamQuery, c.Query)
	}
	for _, cat := range c.Categories {
		v.Add(ParamCategory, cat)
	}
	if c.Subcategory != "" {
		v.Set(ParamSubcategory, c.Subcategory)
	}
	if c.MinRating > 0 {
		v.Set(ParamRating, strconv.Itoa(c.MinRating))
	}
	if c.PriceMin.IsPositive() {
		v.Set(ParamPriceMin, c.PriceMin.String())
	}
	if c.PriceMax.IsPositive() {
		v.Set(ParamPriceMax, c.PriceMax.String())
	}
	if c.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(c.Page))
	}
	if c.Latest {
		v.Set(ParamSort, SortLatest)
	}
	return v
}

// WithPage returns a copy of the criteria pointing at another page, for
// pager links.
func (c Criteria) WithPage(page int) Criteria {
	c.Page = page
	return c
}

// WithSubcategory toggles a subcategory selection: selecting the already
// active slug deselects it. Either way pagination resets to page 1; the
// parent category's sidebar entry stays expanded on deselect.
func (c Criteria) WithSubcategory(slug string) Criteria {
	if c.Subcategory == slug {
		c.Subcategory = ""
	} else {
		c.Subcategory = slug
	}
	c.Page = 1
	return c
}

// WithRating returns criteria filtered to the given minimum rating, reset to
// page 1. Changing any facet resets pagination.
func (c Criteria) WithRating(min int) Criteria {
	c.MinRating = clampRating(min)
	c.Page = 1
	return c
}

// ToggleCategory flips one category in the flat-page multi-select and resets
// to page 1.
func (c Criteria) ToggleCategory(title string) Criteria {
	out := c
	out.Categories = nil
	found := false
	for _, cat := range c.Categories {
		if cat == title {
			found = true
			continue
		}
		out.Categories = append(out.Categories, cat)
	}
	if !found {
		out.Categories = append(out.Categories, title)
	}
	out.Page = 1
	return out
}

// HasCategory reports whether a category is currently selected.
func (c Criteria) HasCategory(title string) bool {
	for _, cat := range c.Categories {
		if cat == title {
			return true
		}
	}
	return false
}

// Encode renders the criteria as a query string including the leading "?",
// or "" when everything is default. Convenient for template link building.
func (c Criteria) Encode() string {
	v := c.Values()
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
