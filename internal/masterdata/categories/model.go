package categories

import "time"

// Category is the administrative write model. Products and subcategories
// reference a category by its title, so renames must be propagated to both
// tables in the same transaction.
type Category struct {
	ID          int64
	Title       string
	Image       string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
