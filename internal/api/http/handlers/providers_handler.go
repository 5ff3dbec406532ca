package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/consulting-marketplace/internal/api/dto"
	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/service"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// ProvidersHandler serves provider public profiles and portfolio management.
type ProvidersHandler struct {
	providers *service.ProviderService
}

// NewProvidersHandler constructs handler.
func NewProvidersHandler(providers *service.ProviderService) *ProvidersHandler {
	return &ProvidersHandler{providers: providers}
}

// PublicProfile GET /providers/:id/profile. No authentication required.
func (h *ProvidersHandler) PublicProfile(c *fiber.Ctx) error {
	profile, err := h.providers.PublicProfile(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProviderProfileResponse(profile.User, profile.AverageRating, profile.Portfolio, profile.Reviews)})
}

// ListPortfolio GET /providers/portfolio.
func (h *ProvidersHandler) ListPortfolio(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	items, err := h.providers.ListPortfolio(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPortfolioItemResponses(items)})
}

// AddPortfolioItem POST /providers/portfolio.
func (h *ProvidersHandler) AddPortfolioItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddPortfolioItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.providers.AddPortfolioItem(c.Context(), principal.ID(), service.PortfolioInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPortfolioItemResponse(item)})
}

// DeletePortfolioItem DELETE /providers/portfolio/:id.
func (h *ProvidersHandler) DeletePortfolioItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.providers.DeletePortfolioItem(c.Context(), principal.ID(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "portfolio item removed"})
}
