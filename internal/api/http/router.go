package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cms-service/internal/api/http/handlers"
	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Articles   *handlers.ArticlesHandler
	Categories *handlers.CategoriesHandler
	Admin      *handlers.AdminHandler
	Identity   *auth.Middleware
}

// GuardedRoles lists every role name the router's guards reference, for
// validation against the seeded registry at startup.
func GuardedRoles() []string {
	return []string{domain.RoleAdmin, domain.RoleReporter}
}

// RegisterRoutes wires HTTP routes. Identity resolution runs on every
// request; guards fail closed per route.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Identity.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	v1 := app.Group("/api/v1")

	articles := v1.Group("/articles")
	articles.Get("/", cfg.Articles.List)
	articles.Get("/:id", cfg.Articles.Get)
	articles.Post("/", auth.RequireRole(domain.RoleReporter, domain.RoleAdmin), cfg.Articles.Create)
	articles.Put("/:id", auth.RequireRole(domain.RoleReporter, domain.RoleAdmin), cfg.Articles.Update)
	articles.Delete("/:id", auth.RequireRole(domain.RoleReporter, domain.RoleAdmin), cfg.Articles.Delete)

	categories := v1.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/slug/:slug", cfg.Categories.GetBySlug)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Create)
	categories.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Update)
	categories.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Delete)

	admin := v1.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Put("/articles/:id/publish", cfg.Admin.PublishArticle)
}
