package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cms-service/internal/api/dto"
	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/service"
)

// AdminHandler exposes admin-only endpoints; the admin role guard is
// applied by the router.
type AdminHandler struct {
	admin    *service.AdminService
	articles *service.ArticleService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, articleService *service.ArticleService) *AdminHandler {
	return &AdminHandler{admin: adminService, articles: articleService}
}

// Dashboard handles GET /api/v1/admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.admin.DashboardStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(stats)})
}

// PublishArticle handles PUT /api/v1/admin/articles/:id/publish.
func (h *AdminHandler) PublishArticle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	identity, _ := auth.IdentityFromContext(c)
	article, err := h.articles.Publish(c.Context(), identity, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewArticleDetail(article)})
}
