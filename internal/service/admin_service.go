package service

import (
	"context"

	"github.com/spec-kit/cms-service/internal/domain"
	"github.com/spec-kit/cms-service/internal/repository"
)

// Dashboard aggregates CMS statistics for the admin view.
type Dashboard struct {
	TotalArticles    int64
	ArticlesByStatus map[domain.ArticleStatus]int64
	TopCategories    []repository.CategoryStat
}

// AdminService computes administrative aggregates.
type AdminService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
}

// NewAdminService constructs the service.
func NewAdminService(articles repository.ArticleRepository, categories repository.CategoryRepository) *AdminService {
	return &AdminService{articles: articles, categories: categories}
}

// DashboardStats returns total article count, counts per status, and the
// five categories with the most articles.
func (s *AdminService) DashboardStats(ctx context.Context) (*Dashboard, error) {
	total, err := s.articles.CountTotal(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.articles.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.categories.TopByArticleCount(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalArticles:    total,
		ArticlesByStatus: byStatus,
		TopCategories:    top,
	}, nil
}
