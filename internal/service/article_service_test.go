package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/domain"
	"github.com/spec-kit/cms-service/internal/repository"
	apperrors "github.com/spec-kit/cms-service/pkg/util"
)

type fakeArticleRepo struct {
	articles    map[int64]*domain.Article
	nextID      int64
	updateCalls int
	deleteCalls int
	lastFilter  repository.ArticleFilter
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[int64]*domain.Article), nextID: 1}
}

func (r *fakeArticleRepo) Create(_ context.Context, article *domain.Article) error {
	article.ID = r.nextID
	r.nextID++
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	stored := *article
	r.articles[article.ID] = &stored
	return nil
}

func (r *fakeArticleRepo) Update(_ context.Context, article *domain.Article) error {
	r.updateCalls++
	if _, ok := r.articles[article.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *article
	r.articles[article.ID] = &stored
	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	r.deleteCalls++
	if _, ok := r.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id int64) (*domain.Article, error) {
	article, ok := r.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *article
	return &copied, nil
}

func (r *fakeArticleRepo) List(_ context.Context, filter repository.ArticleFilter) ([]domain.Article, error) {
	r.lastFilter = filter
	var out []domain.Article
	for _, article := range r.articles {
		if filter.Status != nil && article.Status != *filter.Status {
			continue
		}
		out = append(out, *article)
	}
	return out, nil
}

func (r *fakeArticleRepo) CountTotal(_ context.Context) (int64, error) {
	return int64(len(r.articles)), nil
}

func (r *fakeArticleRepo) CountByStatus(_ context.Context) (map[domain.ArticleStatus]int64, error) {
	counts := make(map[domain.ArticleStatus]int64)
	for _, article := range r.articles {
		counts[article.Status]++
	}
	return counts, nil
}

type fakeCategoryRepo struct {
	categories map[int64]*domain.Category
	nextID     int64
	withPosts  map[int64]bool
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*domain.Category), nextID: 1, withPosts: make(map[int64]bool)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	category.ID = r.nextID
	r.nextID++
	category.CreatedAt = time.Now()
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, category := range r.categories {
		out = append(out, *category)
	}
	return out, nil
}

func (r *fakeCategoryRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, category := range r.categories {
		if category.ID != excludeID && category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) ExistsBySlug(_ context.Context, slug string, excludeID int64) (bool, error) {
	for _, category := range r.categories {
		if category.ID != excludeID && category.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) HasArticles(_ context.Context, id int64) (bool, error) {
	return r.withPosts[id], nil
}

func (r *fakeCategoryRepo) TopByArticleCount(_ context.Context, limit int) ([]repository.CategoryStat, error) {
	return nil, nil
}

func newArticleFixture(t *testing.T) (*ArticleService, *fakeArticleRepo, *fakeCategoryRepo) {
	t.Helper()
	articles := newFakeArticleRepo()
	categories := newFakeCategoryRepo()
	if err := categories.Create(context.Background(), &domain.Category{Name: "Tin tức", Slug: "tin-tuc"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	svc := NewArticleService(ArticleDependencies{
		ArticleRepo:  articles,
		CategoryRepo: categories,
		Logger:       zap.NewNop(),
	})
	return svc, articles, categories
}

func reporterIdentity(userID int64) *auth.Identity {
	return &auth.Identity{UserID: userID, Username: "reporter", Roles: []string{domain.RoleReporter}}
}

func adminIdentity(userID int64) *auth.Identity {
	return &auth.Identity{UserID: userID, Username: "admin", Roles: []string{domain.RoleAdmin}}
}

func TestArticleCreateSetsAuthorAndDraft(t *testing.T) {
	svc, _, _ := newArticleFixture(t)

	article, err := svc.Create(context.Background(), reporterIdentity(7), ArticleInput{
		Title:      "  Breaking news  ",
		Content:    "body",
		CategoryID: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if article.AuthorID != 7 {
		t.Errorf("AuthorID = %d, want 7", article.AuthorID)
	}
	if article.Status != domain.ArticleStatusDraft {
		t.Errorf("Status = %q, want DRAFT", article.Status)
	}
	if article.Title != "Breaking news" {
		t.Errorf("Title = %q, want trimmed", article.Title)
	}
	if article.ExternalKey == "" {
		t.Error("ExternalKey not assigned")
	}
}

func TestArticleCreateRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newArticleFixture(t)

	_, err := svc.Create(context.Background(), reporterIdentity(7), ArticleInput{
		Title: "t", Content: "c", CategoryID: 99,
	})
	if err == nil {
		t.Fatal("unknown category accepted")
	}
}

func TestArticleUpdateByNonOwnerForbidden(t *testing.T) {
	svc, articles, _ := newArticleFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, reporterIdentity(1), ArticleInput{Title: "t", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(ctx, reporterIdentity(2), created.ID, ArticleInput{Title: "hijack", Content: "c", CategoryID: 1})
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("got %v, want FORBIDDEN", err)
	}
	if articles.updateCalls != 0 {
		t.Error("forbidden update reached persistence")
	}
	stored, _ := articles.GetByID(ctx, created.ID)
	if stored.Title != "t" {
		t.Errorf("article mutated: Title = %q", stored.Title)
	}
}

func TestArticleUpdateByOwnerResetsToDraft(t *testing.T) {
	svc, _, _ := newArticleFixture(t)
	ctx := context.Background()
	owner := reporterIdentity(1)

	created, err := svc.Create(ctx, owner, ArticleInput{Title: "t", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Publish(ctx, adminIdentity(9), created.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	updated, err := svc.Update(ctx, owner, created.ID, ArticleInput{Title: "t2", Content: "c2", CategoryID: 1})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.ArticleStatusDraft {
		t.Errorf("Status = %q, want DRAFT after edit", updated.Status)
	}
	if updated.AuthorID != 1 {
		t.Errorf("AuthorID changed to %d", updated.AuthorID)
	}
}

func TestArticleUpdateByAdminAllowed(t *testing.T) {
	svc, _, _ := newArticleFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, reporterIdentity(1), ArticleInput{Title: "t", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, adminIdentity(9), created.ID, ArticleInput{Title: "edited", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "edited" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.AuthorID != 1 {
		t.Errorf("admin edit changed AuthorID to %d", updated.AuthorID)
	}
}

func TestArticleDeleteOwnership(t *testing.T) {
	svc, articles, _ := newArticleFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, reporterIdentity(1), ArticleInput{Title: "t", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, reporterIdentity(2), created.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("non-owner delete: got %v, want FORBIDDEN", err)
	}
	if err := svc.Delete(ctx, adminIdentity(9), created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := articles.GetByID(ctx, created.ID); err == nil {
		t.Error("article still present after delete")
	}
}

func TestArticlePublishOnlyFromDraft(t *testing.T) {
	svc, _, _ := newArticleFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, reporterIdentity(1), ArticleInput{Title: "t", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	published, err := svc.Publish(ctx, adminIdentity(9), created.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.Status != domain.ArticleStatusPublished {
		t.Errorf("Status = %q", published.Status)
	}

	if _, err := svc.Publish(ctx, adminIdentity(9), created.ID); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("re-publish: got %v, want VALIDATION_FAILED", err)
	}
}

func TestArticleListVisibility(t *testing.T) {
	svc, articles, _ := newArticleFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, reporterIdentity(1), ArticleInput{Title: "draft", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	pub, err := svc.Create(ctx, reporterIdentity(1), ArticleInput{Title: "live", Content: "c", CategoryID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Publish(ctx, adminIdentity(9), pub.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	anon, err := svc.List(ctx, nil, 10, 0)
	if err != nil {
		t.Fatalf("List anonymous: %v", err)
	}
	if len(anon) != 1 || anon[0].ID != pub.ID {
		t.Errorf("anonymous listing = %v, want only the published article", anon)
	}
	if articles.lastFilter.Status == nil || *articles.lastFilter.Status != domain.ArticleStatusPublished {
		t.Error("anonymous listing did not constrain status")
	}

	authed, err := svc.List(ctx, reporterIdentity(1), 10, 0)
	if err != nil {
		t.Fatalf("List authenticated: %v", err)
	}
	if len(authed) != 2 {
		t.Errorf("authenticated listing has %d articles, want 2", len(authed))
	}
	if articles.lastFilter.Status != nil {
		t.Error("authenticated listing constrained status")
	}
}
