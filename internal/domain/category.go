package domain

import "time"

// Category groups articles and carries a URL-friendly slug.
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}
