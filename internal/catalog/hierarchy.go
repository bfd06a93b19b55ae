package catalog

// Hierarchy groups subcategories under their parent category title for the
// sidebar. Subcategories keep fetch order under each parent; parents keep
// the order their first subcategory was fetched, which makes Parent lookups
// deterministic. Nothing is sorted.
type Hierarchy struct {
	order  []string
	groups map[string][]SubCategory
}

// GroupSubcategories builds the category-title -> subcategory mapping. The
// grouping key is the denormalised parent title exactly as stored; a renamed
// category stops claiming its old subcategories, which is the documented
// name-join fragility.
func GroupSubcategories(subs []SubCategory) *Hierarchy {
	h := &Hierarchy{groups: make(map[string][]SubCategory)}
	for _, sub := range subs {
		if _, ok := h.groups[sub.Category]; !ok {
			h.order = append(h.order, sub.Category)
		}
		h.groups[sub.Category] = append(h.groups[sub.Category], sub)
	}
	return h
}

// Under returns the ordered subcategories of a parent category title.
func (h *Hierarchy) Under(category string) []SubCategory {
	if h == nil {
		return nil
	}
	return h.groups[category]
}

// Expandable reports whether the sidebar entry for a category can expand,
// i.e. it has at least one subcategory.
func (h *Hierarchy) Expandable(category string) bool {
	return h != nil && len(h.groups[category]) > 0
}

// Parent returns the parent category title of a subcategory slug, for
// force-expanding the right sidebar entry when a selection arrives by URL.
func (h *Hierarchy) Parent(slug string) (string, bool) {
	if h == nil {
		return "", false
	}
	for _, cat := range h.order {
		for _, sub := range h.groups[cat] {
			if sub.Slug == slug {
				return cat, true
			}
		}
	}
	return "", false
}
