package dto

import (
	"time"

	"github.com/spec-kit/cms-service/internal/domain"
)

// CategoryRequest payload.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse shape.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategoryResponse maps a category to its response shape.
func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
	}
}
