package subcategories

import "time"

// SubCategory is the administrative write model. The parent link is the
// category title, matching how products carry their sub_category value.
type SubCategory struct {
	ID        int64
	Title     string
	Category  string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
