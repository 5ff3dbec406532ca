package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/service"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// DashboardHandler serves the role-specific dashboard aggregates.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// ClientStats GET /dashboard/client-stats.
func (h *DashboardHandler) ClientStats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats, err := h.dashboard.ClientStats(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// ProviderStats GET /dashboard/provider-stats.
func (h *DashboardHandler) ProviderStats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats, err := h.dashboard.ProviderStats(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
