package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/config"
	"github.com/spec-kit/cms-service/internal/domain"
	"github.com/spec-kit/cms-service/internal/repository"
)

// SeedDependencies bundles the repositories the seeder writes through.
type SeedDependencies struct {
	Roles      repository.RoleRepository
	Users      repository.UserRepository
	Categories repository.CategoryRepository
}

var defaultCategories = []domain.Category{
	{Name: "Tin tức", Slug: "tin-tuc"},
	{Name: "Thể thao", Slug: "the-thao"},
	{Name: "Công nghệ", Slug: "cong-nghe"},
	{Name: "Giải trí", Slug: "giai-tri"},
	{Name: "Kinh doanh", Slug: "kinh-doanh"},
}

// SeedReferenceData creates the role registry, default accounts, and default
// categories when absent. Idempotent: every write is existence-checked.
func SeedReferenceData(ctx context.Context, cfg *config.Config, deps SeedDependencies, logger *zap.Logger) error {
	if err := seedRoles(ctx, deps.Roles, logger); err != nil {
		return err
	}
	if err := seedUser(ctx, deps.Users, logger, "admin", "admin@domain.com", cfg.Seed.AdminPassword, cfg.Auth.BcryptCost, domain.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(ctx, deps.Users, logger, "reporter", "reporter@domain.com", cfg.Seed.ReporterPassword, cfg.Auth.BcryptCost, domain.RoleReporter); err != nil {
		return err
	}
	return seedCategories(ctx, deps.Categories, logger)
}

func seedRoles(ctx context.Context, roles repository.RoleRepository, logger *zap.Logger) error {
	registry := []domain.Role{
		{Name: domain.RoleAdmin, Description: "Administrator with full access"},
		{Name: domain.RoleReporter, Description: "Reporter who can create and manage own articles"},
	}
	for i := range registry {
		exists, err := roles.ExistsByName(ctx, registry[i].Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := roles.Create(ctx, &registry[i]); err != nil {
			return err
		}
		logger.Info("created default role", zap.String("role", registry[i].Name))
	}
	return nil
}

func seedUser(ctx context.Context, users repository.UserRepository, logger *zap.Logger, username, email, password string, bcryptCost int, role string) error {
	exists, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	if err := users.AssignRole(ctx, user.ID, role); err != nil {
		return err
	}
	logger.Info("created default user", zap.String("username", username), zap.String("role", role))
	return nil
}

func seedCategories(ctx context.Context, categories repository.CategoryRepository, logger *zap.Logger) error {
	for i := range defaultCategories {
		exists, err := categories.ExistsBySlug(ctx, defaultCategories[i].Slug, 0)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		category := defaultCategories[i]
		if err := categories.Create(ctx, &category); err != nil {
			return err
		}
		logger.Info("created default category", zap.String("name", category.Name))
	}
	return nil
}
