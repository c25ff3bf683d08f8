package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cms-service/internal/api/dto"
	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/service"
	apperrors "github.com/spec-kit/cms-service/pkg/util"
)

// ArticlesHandler exposes article CRUD endpoints.
type ArticlesHandler struct {
	articles *service.ArticleService
}

// NewArticlesHandler constructs handler.
func NewArticlesHandler(articleService *service.ArticleService) *ArticlesHandler {
	return &ArticlesHandler{articles: articleService}
}

// List handles GET /api/v1/articles. Anonymous callers receive only
// published articles; authenticated callers see everything.
func (h *ArticlesHandler) List(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	articles, err := h.articles.List(c.Context(), identity, limit, offset)
	if err != nil {
		return err
	}

	summaries := make([]dto.ArticleSummary, 0, len(articles))
	for i := range articles {
		summaries = append(summaries, dto.NewArticleSummary(&articles[i]))
	}
	return c.JSON(fiber.Map{"data": summaries})
}

// Get handles GET /api/v1/articles/:id.
func (h *ArticlesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	article, err := h.articles.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewArticleDetail(article)})
}

// Create handles POST /api/v1/articles.
func (h *ArticlesHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	article, err := h.articles.Create(c.Context(), identity, service.ArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewArticleDetail(article)})
}

// Update handles PUT /api/v1/articles/:id.
func (h *ArticlesHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	article, err := h.articles.Update(c.Context(), identity, id, service.ArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewArticleDetail(article)})
}

// Delete handles DELETE /api/v1/articles/:id.
func (h *ArticlesHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.articles.Delete(c.Context(), identity, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
