package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/domain"
	"github.com/spec-kit/cms-service/internal/events"
	"github.com/spec-kit/cms-service/internal/repository"
	apperrors "github.com/spec-kit/cms-service/pkg/util"
)

// ArticleInput describes create/update payloads.
type ArticleInput struct {
	Title      string
	Content    string
	CategoryID int64
}

// ArticleService coordinates article workflows. Every method takes the
// resolved identity explicitly; the service never reads ambient state.
type ArticleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ArticleDependencies bundles collaborators for the article service.
type ArticleDependencies struct {
	ArticleRepo  repository.ArticleRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewArticleService constructs the service.
func NewArticleService(deps ArticleDependencies) *ArticleService {
	return &ArticleService{
		articles:   deps.ArticleRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns articles visible to the caller: anonymous callers see only
// published articles, authenticated callers see everything.
func (s *ArticleService) List(ctx context.Context, identity *auth.Identity, limit, offset int) ([]domain.Article, error) {
	filter := repository.ArticleFilter{Limit: limit, Offset: offset}
	if identity == nil {
		published := domain.ArticleStatusPublished
		filter.Status = &published
	}
	return s.articles.List(ctx, filter)
}

// Get returns one article by id regardless of status.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Create stores a new draft article authored by the caller. The route guard
// has already required the reporter or admin role.
func (s *ArticleService) Create(ctx context.Context, identity *auth.Identity, input ArticleInput) (*domain.Article, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if err := validateArticleInput(input); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	article := &domain.Article{
		ExternalKey: uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		Status:      domain.ArticleStatusDraft,
		CategoryID:  input.CategoryID,
		AuthorID:    identity.UserID,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	s.publish(ctx, identity, events.EventArticleCreated, events.ArticleCreatedPayload{
		ArticleID:  article.ID,
		CategoryID: article.CategoryID,
		Title:      article.Title,
	})
	return article, nil
}

// Update modifies an article. Only the recorded author or an admin may do
// so; the owner id comes from storage, never from the request. An update
// resets the article to draft so edits go through review again.
func (s *ArticleService) Update(ctx context.Context, identity *auth.Identity, id int64, input ArticleInput) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.IsOwnerOrHasRole(identity, article.AuthorID, domain.RoleAdmin) {
		s.logger.Warn("article update forbidden",
			zap.Int64("article_id", id),
			zap.Int64("owner_id", article.AuthorID))
		return nil, apperrors.NewForbidden("you can only modify your own articles")
	}
	if err := validateArticleInput(input); err != nil {
		return nil, err
	}
	if input.CategoryID != article.CategoryID {
		if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		article.CategoryID = input.CategoryID
	}

	article.Title = strings.TrimSpace(input.Title)
	article.Content = input.Content
	article.Status = domain.ArticleStatusDraft

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article. Only the recorded author or an admin may do so.
func (s *ArticleService) Delete(ctx context.Context, identity *auth.Identity, id int64) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.IsOwnerOrHasRole(identity, article.AuthorID, domain.RoleAdmin) {
		s.logger.Warn("article delete forbidden",
			zap.Int64("article_id", id),
			zap.Int64("owner_id", article.AuthorID))
		return apperrors.NewForbidden("you can only modify your own articles")
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, identity, events.EventArticleDeleted, events.ArticleDeletedPayload{
		ArticleID: article.ID,
		AuthorID:  article.AuthorID,
	})
	return nil
}

// Publish moves a draft article to published. The route guard requires the
// admin role; only drafts can be published.
func (s *ArticleService) Publish(ctx context.Context, identity *auth.Identity, id int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != domain.ArticleStatusDraft {
		return nil, apperrors.NewValidationError(
			"only DRAFT articles can be published",
			map[string]any{"current_status": string(article.Status)})
	}

	article.Status = domain.ArticleStatusPublished
	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}

	s.publish(ctx, identity, events.EventArticlePublished, events.ArticlePublishedPayload{
		ArticleID: article.ID,
		Title:     article.Title,
	})
	return article, nil
}

func (s *ArticleService) publish(ctx context.Context, identity *auth.Identity, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{}
	if identity != nil {
		actor = events.Actor{UserID: identity.UserID, Username: identity.Username}
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func validateArticleInput(input ArticleInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.Content) == "" {
		return apperrors.NewValidationError("content is required", nil)
	}
	if input.CategoryID <= 0 {
		return apperrors.NewValidationError("category_id is required", nil)
	}
	return nil
}
