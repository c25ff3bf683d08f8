package domain

import "time"

// ArticleStatus represents the publication state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "DRAFT"
	ArticleStatusPublished ArticleStatus = "PUBLISHED"
)

// Article is a news article. AuthorID records the creator at creation time
// and is immutable afterwards; it is the sole input to ownership checks.
type Article struct {
	ID          int64
	ExternalKey string
	Title       string
	Content     string
	Status      ArticleStatus
	CategoryID  int64
	AuthorID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
