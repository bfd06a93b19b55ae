package store

import (
	"strconv"

	"github.com/sk-equipments/storefront/internal/catalog"
)

// PageLink is a single pagination control with its target URL precomputed so
// templates never build query strings.
type PageLink struct {
	Number   int
	Current  bool
	Ellipsis bool
	URL      string
}

// CategoryFacet is one entry in the flat products page's category
// multi-select.
type CategoryFacet struct {
	Title     string
	Selected  bool
	ToggleURL string
}

// SubcategoryChip is one subcategory link in the sidebar tree.
type SubcategoryChip struct {
	Title  string
	Slug   string
	Active bool
	URL    string
}

// SidebarCategory is one expandable entry in the category sidebar. Expanded
// is forced on when the active subcategory belongs to this category, so a
// selection arriving by URL opens the right group.
type SidebarCategory struct {
	Title         string
	URL           string
	Active        bool
	Expandable    bool
	Expanded      bool
	Subcategories []SubcategoryChip
}

// RatingOption is one entry in the minimum rating filter.
type RatingOption struct {
	Stars    int
	Selected bool
	URL      string
}

// FormField is a hidden input the price form re-submits so applying a bound
// keeps every other active facet.
type FormField struct {
	Name  string
	Value string
}

// FilterState carries everything the filter sidebar needs for the current
// request: each control's label plus the URL that toggles it. Category pages
// get the Sidebar tree; the flat products page gets the Categories
// multi-select instead.
type FilterState struct {
	Query      string
	Sidebar    []SidebarCategory
	Categories []CategoryFacet
	Ratings    []RatingOption
	PriceMin   string
	PriceMax   string
	PriceForm  []FormField
	ResetURL   string
	Active     bool
}

// buildPager resolves the window of page links around the current page. base
// is the path the links point at.
func buildPager(base string, c catalog.Criteria, page catalog.Page) []PageLink {
	refs := catalog.PageWindow(page.Number, page.TotalPages)
	links := make([]PageLink, 0, len(refs))
	for _, ref := range refs {
		link := PageLink{Number: ref.Number, Current: ref.Current, Ellipsis: ref.Ellipsis}
		if !ref.Ellipsis {
			link.URL = base + c.WithPage(ref.Number).Encode()
		}
		links = append(links, link)
	}
	return links
}

// buildFilterState derives the sidebar view model. activeCategory is the
// title of the category page being rendered, empty on the flat products
// page. Every toggle URL resets the page number: changing a facet always
// lands on page one.
func buildFilterState(base string, c catalog.Criteria, snap *catalog.Snapshot, activeCategory string) FilterState {
	state := FilterState{
		Query:     c.Query,
		PriceForm: priceFormFields(c),
		ResetURL:  base,
		Active:    !c.IsDefault(),
	}
	if c.PriceMin.IsPositive() {
		state.PriceMin = c.PriceMin.String()
	}
	if c.PriceMax.IsPositive() {
		state.PriceMax = c.PriceMax.String()
	}

	if activeCategory != "" {
		state.Sidebar = buildSidebar(base, c, snap, activeCategory)
	} else {
		for _, title := range snap.CategoryTitles() {
			state.Categories = append(state.Categories, CategoryFacet{
				Title:     title,
				Selected:  c.HasCategory(title),
				ToggleURL: base + c.ToggleCategory(title).Encode(),
			})
		}
	}

	for stars := 4; stars >= 1; stars-- {
		next := stars
		if c.MinRating == stars {
			next = 0
		}
		state.Ratings = append(state.Ratings, RatingOption{
			Stars:    stars,
			Selected: c.MinRating == stars,
			URL:      base + c.WithRating(next).Encode(),
		})
	}

	return state
}

// buildSidebar lists every category with its subcategories nested beneath.
// The active category's group stays open; so does the parent of the selected
// subcategory. Subcategory links under the active category toggle the
// selection in place, links under any other category navigate to that
// category page with the subcategory pre-selected.
func buildSidebar(base string, c catalog.Criteria, snap *catalog.Snapshot, activeCategory string) []SidebarCategory {
	hierarchy := catalog.GroupSubcategories(snap.Subcategories)
	forceExpand, _ := hierarchy.Parent(c.Subcategory)

	entries := make([]SidebarCategory, 0, len(snap.Categories))
	for _, cat := range snap.Categories {
		entry := SidebarCategory{
			Title:      cat.Title,
			URL:        "/category/" + cat.Slug,
			Active:     cat.Title == activeCategory,
			Expandable: hierarchy.Expandable(cat.Title),
		}
		entry.Expanded = entry.Active || cat.Title == forceExpand

		for _, sub := range hierarchy.Under(cat.Title) {
			chip := SubcategoryChip{
				Title:  sub.Title,
				Slug:   sub.Slug,
				Active: c.Subcategory == sub.Slug,
			}
			if entry.Active {
				chip.URL = base + c.WithSubcategory(sub.Slug).Encode()
			} else {
				chip.URL = entry.URL + catalog.DefaultCriteria().WithSubcategory(sub.Slug).Encode()
			}
			entry.Subcategories = append(entry.Subcategories, chip)
		}
		entries = append(entries, entry)
	}
	return entries
}

// priceFormFields lists the hidden inputs the price form carries: every
// active facet except the price bounds, which the visible inputs own. Page
// is dropped so applying a bound lands on page one.
func priceFormFields(c catalog.Criteria) []FormField {
	var fields []FormField
	if c.Query != "" {
		fields = append(fields, FormField{Name: catalog.ParamQuery, Value: c.Query})
	}
	for _, cat := range c.Categories {
		fields = append(fields, FormField{Name: catalog.ParamCategory, Value: cat})
	}
	if c.Subcategory != "" {
		fields = append(fields, FormField{Name: catalog.ParamSubcategory, Value: c.Subcategory})
	}
	if c.MinRating > 0 {
		fields = append(fields, FormField{Name: catalog.ParamRating, Value: strconv.Itoa(c.MinRating)})
	}
	if c.Latest {
		fields = append(fields, FormField{Name: catalog.ParamSort, Value: catalog.SortLatest})
	}
	return fields
}

// resultSummary renders "Showing x–y of z" bounds for a page.
func resultSummary(page catalog.Page) string {
	if page.Total == 0 {
		return "No products found"
	}
	return "Showing " + strconv.Itoa(page.First) + "–" + strconv.Itoa(page.Last) +
		" of " + strconv.Itoa(page.Total) + " products"
}
