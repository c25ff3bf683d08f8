package dto

import (
	"github.com/spec-kit/cms-service/internal/service"
)

// CategoryStatResponse is a per-category article count.
type CategoryStatResponse struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	ArticleCount int64  `json:"article_count"`
}

// DashboardResponse aggregates admin statistics.
type DashboardResponse struct {
	TotalArticles    int64                  `json:"total_articles"`
	ArticlesByStatus map[string]int64       `json:"articles_by_status"`
	TopCategories    []CategoryStatResponse `json:"top_categories"`
}

// NewDashboardResponse maps dashboard stats to their response shape.
func NewDashboardResponse(d *service.Dashboard) DashboardResponse {
	byStatus := make(map[string]int64, len(d.ArticlesByStatus))
	for status, count := range d.ArticlesByStatus {
		byStatus[string(status)] = count
	}

	top := make([]CategoryStatResponse, 0, len(d.TopCategories))
	for _, stat := range d.TopCategories {
		top = append(top, CategoryStatResponse{
			CategoryID:   stat.CategoryID,
			CategoryName: stat.CategoryName,
			ArticleCount: stat.ArticleCount,
		})
	}

	return DashboardResponse{
		TotalArticles:    d.TotalArticles,
		ArticlesByStatus: byStatus,
		TopCategories:    top,
	}
}
