package item

import "time"

// Item represents a row in the items table, a priced demo catalog entry
// used to validate the cluster end-to-end.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Price       float64    `json:"price"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewItem holds the fields required to create an item.
type NewItem struct {
	Name        string
	Description *string
	Price       float64
	IsActive    bool
}

// UpdateFields holds user-updatable fields. Nil fields are not changed.
type UpdateFields struct {
	Name        *string
	Description *string
	Price       *float64
	IsActive    *bool
}

// ListFilter holds pagination and filtering for listing items.
type ListFilter struct {
	Skip       int  // default 0
	Limit      int  // default 100, clamped to [1, 1000]
	ActiveOnly bool
}
