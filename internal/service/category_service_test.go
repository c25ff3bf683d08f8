package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/spec-kit/cms-service/pkg/util"
)

func newCategoryService(t *testing.T) (*CategoryService, *fakeCategoryRepo) {
	t.Helper()
	repo := newFakeCategoryRepo()
	return NewCategoryService(repo, zap.NewNop()), repo
}

func TestCategoryCreateGeneratesSlug(t *testing.T) {
	svc, _ := newCategoryService(t)

	category, err := svc.Create(context.Background(), "Công nghệ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if category.Slug != "cong-nghe" {
		t.Errorf("Slug = %q, want cong-nghe", category.Slug)
	}
}

func TestCategoryCreateSlugCollision(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	// "Tin tức" and "Tin tuc" normalize to the same slug.
	first, err := svc.Create(ctx, "Tin tức")
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := svc.Create(ctx, "Tin tuc")
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	third, err := svc.Create(ctx, "Tin · Tức")
	if err != nil {
		t.Fatalf("Create third: %v", err)
	}

	if first.Slug != "tin-tuc" {
		t.Errorf("first slug = %q", first.Slug)
	}
	if second.Slug != "tin-tuc-2" {
		t.Errorf("second slug = %q, want tin-tuc-2", second.Slug)
	}
	if third.Slug != "tin-tuc-3" {
		t.Errorf("third slug = %q, want tin-tuc-3", third.Slug)
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Thể thao"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Thể thao"); !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("got %v, want CONFLICT", err)
	}
}

func TestCategoryCreateRejectsBlankName(t *testing.T) {
	svc, _ := newCategoryService(t)

	for _, name := range []string{"", "   ", "!!!"} {
		if _, err := svc.Create(context.Background(), name); !apperrors.IsCode(err, "VALIDATION_FAILED") {
			t.Errorf("Create(%q): got %v, want VALIDATION_FAILED", name, err)
		}
	}
}

func TestCategoryUpdateKeepsOwnSlug(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, "Giải trí")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Renaming to the same normalized form must not pick up a -2 suffix:
	// the category's own slug does not collide with itself.
	updated, err := svc.Update(ctx, category.ID, "Giai tri")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != "giai-tri" {
		t.Errorf("Slug = %q, want giai-tri", updated.Slug)
	}
}

func TestCategoryDeleteBlockedWithArticles(t *testing.T) {
	svc, repo := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, "Kinh doanh")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.withPosts[category.ID] = true

	if err := svc.Delete(ctx, category.ID); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("got %v, want VALIDATION_FAILED", err)
	}

	repo.withPosts[category.ID] = false
	if err := svc.Delete(ctx, category.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
