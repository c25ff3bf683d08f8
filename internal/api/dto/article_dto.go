package dto

import (
	"time"

	"github.com/spec-kit/cms-service/internal/domain"
)

// ArticleRequest payload for create and update.
type ArticleRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int64  `json:"category_id"`
}

// ArticleSummary is the list-view shape.
type ArticleSummary struct {
	ID          int64                `json:"id"`
	ExternalKey string               `json:"external_key"`
	Title       string               `json:"title"`
	Status      domain.ArticleStatus `json:"status"`
	CategoryID  int64                `json:"category_id"`
	AuthorID    int64                `json:"author_id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ArticleDetail is the full article shape.
type ArticleDetail struct {
	ID          int64                `json:"id"`
	ExternalKey string               `json:"external_key"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Status      domain.ArticleStatus `json:"status"`
	CategoryID  int64                `json:"category_id"`
	AuthorID    int64                `json:"author_id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewArticleSummary maps an article to its list shape.
func NewArticleSummary(a *domain.Article) ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		ExternalKey: a.ExternalKey,
		Title:       a.Title,
		Status:      a.Status,
		CategoryID:  a.CategoryID,
		AuthorID:    a.AuthorID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// NewArticleDetail maps an article to its detail shape.
func NewArticleDetail(a *domain.Article) ArticleDetail {
	return ArticleDetail{
		ID:          a.ID,
		ExternalKey: a.ExternalKey,
		Title:       a.Title,
		Content:     a.Content,
		Status:      a.Status,
		CategoryID:  a.CategoryID,
		AuthorID:    a.AuthorID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
