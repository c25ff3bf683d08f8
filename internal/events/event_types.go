package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventUserLoggedIn     EventType = "user_logged_in"
	EventArticleCreated   EventType = "article_created"
	EventArticlePublished EventType = "article_published"
	EventArticleDeleted   EventType = "article_deleted"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   int64    `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// ArticleCreatedPayload payload.
type ArticleCreatedPayload struct {
	ArticleID  int64  `json:"article_id"`
	CategoryID int64  `json:"category_id"`
	Title      string `json:"title"`
}

// ArticlePublishedPayload payload.
type ArticlePublishedPayload struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
}

// ArticleDeletedPayload payload.
type ArticleDeletedPayload struct {
	ArticleID int64 `json:"article_id"`
	AuthorID  int64 `json:"author_id"`
}
