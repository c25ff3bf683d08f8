package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/cms-service/internal/domain"
	"github.com/spec-kit/cms-service/internal/repository"
	"github.com/spec-kit/cms-service/pkg/util"
)

// CategoryService coordinates category management. Write operations are
// admin-gated at the route; the service enforces the data invariants.
type CategoryService struct {
	categories repository.CategoryRepository
	logger     *zap.Logger
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Get returns one category by id.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// GetBySlug returns one category by its slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}

// Create stores a new category with an auto-generated unique slug. Names
// are unique case-insensitively.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.NewValidationError("name is required", nil)
	}

	exists, err := s.categories.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewConflict("category name already exists", map[string]any{"name": name})
	}

	slug, err := s.uniqueSlug(ctx, name, 0)
	if err != nil {
		return nil, err
	}

	category := &domain.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("created category", zap.String("name", name), zap.String("slug", slug))
	return category, nil
}

// Update renames a category and regenerates its slug.
func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.NewValidationError("name is required", nil)
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.categories.ExistsByName(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewConflict("category name already exists", map[string]any{"name": name})
	}

	slug, err := s.uniqueSlug(ctx, name, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = slug
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Categories with articles cannot be deleted;
// the articles must be moved or removed first.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hasArticles, err := s.categories.HasArticles(ctx, id)
	if err != nil {
		return err
	}
	if hasArticles {
		return util.NewValidationError(
			"cannot delete category with articles; move or delete the articles first",
			map[string]any{"category": category.Name})
	}

	return s.categories.Delete(ctx, id)
}

// uniqueSlug derives a slug from the name, appending -2, -3, ... until it is
// unique among other categories.
func (s *CategoryService) uniqueSlug(ctx context.Context, name string, excludeID int64) (string, error) {
	base := util.ToSlug(name)
	if base == "" {
		return "", util.NewValidationError("name produces an empty slug", nil)
	}

	slug := base
	for suffix := 2; ; suffix++ {
		taken, err := s.categories.ExistsBySlug(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = util.SlugWithSuffix(base, suffix)
	}
}
