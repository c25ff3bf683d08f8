package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cms-service/internal/api/http"
	"github.com/spec-kit/cms-service/internal/api/http/handlers"
	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/config"
	"github.com/spec-kit/cms-service/internal/events"
	"github.com/spec-kit/cms-service/internal/observability"
	"github.com/spec-kit/cms-service/internal/persistence"
	"github.com/spec-kit/cms-service/internal/repository"
	"github.com/spec-kit/cms-service/internal/service"
	"github.com/spec-kit/cms-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)

	if pool != nil {
		if cfg.Seed.Enabled {
			err := persistence.SeedReferenceData(ctx, cfg, persistence.SeedDependencies{
				Roles:      roleRepo,
				Users:      userRepo,
				Categories: categoryRepo,
			}, logger)
			if err != nil {
				logger.Fatal("failed to seed reference data", zap.Error(err))
			}
		}

		if err := validateRoleRegistry(ctx, cfg, roleRepo); err != nil {
			logger.Fatal("role registry validation failed", zap.Error(err))
		}
	}

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to build token codec", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	audit := service.NewLoginAudit(redis.ClientHandle(), logger, cfg.Auth.LoginAuditTTL())

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		Codec:      codec,
		Audit:      audit,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	articleService := service.NewArticleService(service.ArticleDependencies{
		ArticleRepo:  articleRepo,
		CategoryRepo: categoryRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	categoryService := service.NewCategoryService(categoryRepo, logger)
	adminService := service.NewAdminService(articleRepo, categoryRepo)

	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	identity := auth.NewMiddleware(codec, logger, metrics, cfg.Auth.PublicPathPrefixes)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService),
		Articles:   handlers.NewArticlesHandler(articleService),
		Categories: handlers.NewCategoriesHandler(categoryService),
		Admin:      handlers.NewAdminHandler(adminService, articleService),
		Identity:   identity,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// validateRoleRegistry boot-fails on any role name used by route guards or
// registration defaults that is absent from the seeded registry. A silent
// typo here would lock routes shut permanently.
func validateRoleRegistry(ctx context.Context, cfg *config.Config, roles repository.RoleRepository) error {
	registry, err := roles.List(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(registry))
	for _, role := range registry {
		names = append(names, role.Name)
	}

	used := append(httptransport.GuardedRoles(), cfg.Auth.DefaultRole)
	return auth.ValidateRoleNames(names, used...)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
