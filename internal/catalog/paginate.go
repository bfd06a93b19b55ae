package catalog

import "sort"

// Per-view page sizes.
const (
	ProductsPerPage = 12
	CategoryPerPage = 9
	AdminPerPage    = 10

	maxVisiblePages = 5
)

// Page is one window of a filtered result set plus the metadata the
// templates need to render "Showing X-Y of Z" and the pager.
type Page struct {
	Items      []Product
	Number     int
	Size       int
	Total      int
	TotalPages int
	// First and Last are the 1-based positions of the window within the
	// filtered set; both zero when the set is empty.
	First int
	Last  int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a further page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate slices one page out of the filtered set. The requested page is
// clamped to [1, totalPages]; the window is the zero-based slice
// [(page-1)*size, page*size).
func Paginate(items []Product, page, size int) Page {
	if size <= 0 {
		size = ProductsPerPage
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	p := Page{Number: page, Size: size, Total: total, TotalPages: totalPages}
	if total == 0 {
		return p
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p.Items = items[start:end]
	p.First = start + 1
	p.Last = end
	return p
}

// PageRef is one pager control: a numbered link or an ellipsis gap.
type PageRef struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// PageWindow computes the bounded pager: at most five contiguous numbers
// centred on the current page, with page 1 and the last page always
// reachable and ellipses covering the gaps. When the current page sits in
// the first half of the range the window grows forward, otherwise backward,
// clamped to [1, total]. A single page renders no pager at all.
func PageWindow(current, total int) []PageRef {
	if total <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - maxVisiblePages/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisiblePages - 1
	if end > total {
		end = total
	}
	if end-start+1 < maxVisiblePages {
		if 2*current < total {
			end = start + maxVisiblePages - 1
			if end > total {
				end = total
			}
		} else {
			start = end - maxVisiblePages + 1
			if start < 1 {
				start = 1
			}
		}
	}

	var refs []PageRef
	if start > 1 {
		refs = append(refs, PageRef{Number: 1, Current: current == 1})
		if start > 2 {
			refs = append(refs, PageRef{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		refs = append(refs, PageRef{Number: i, Current: i == current})
	}
	if end < total {
		if end < total-1 {
			refs = append(refs, PageRef{Ellipsis: true})
		}
		refs = append(refs, PageRef{Number: total, Current: current == total})
	}
	return refs
}

// sortLatest orders products by CreatedAt descending in place. Records with
// a missing or unparseable date carry the zero time and therefore sort last.
// The sort is stable so equal timestamps keep their fetch order.
func sortLatest(items []Product) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
