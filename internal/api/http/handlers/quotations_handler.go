package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/consulting-marketplace/internal/api/dto"
	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/service"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// QuotationsHandler manages quotation endpoints.
type QuotationsHandler struct {
	quotations *service.QuotationService
}

// NewQuotationsHandler constructs handler.
func NewQuotationsHandler(quotations *service.QuotationService) *QuotationsHandler {
	return &QuotationsHandler{quotations: quotations}
}

// Submit POST /projects/:id/quotations.
func (h *QuotationsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitQuotationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	quotation, err := h.quotations.Submit(c.Context(), principal.User, c.Params("id"), service.QuotationInput{
		Amount:       req.Amount,
		DeliveryDays: req.DeliveryDays,
		Message:      req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewQuotationResponse(quotation)})
}

// ListForProject GET /projects/:id/quotations.
func (h *QuotationsHandler) ListForProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	quotations, err := h.quotations.ListForProject(c.Context(), principal.ID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQuotationResponses(quotations)})
}

// ListOwn GET /quotations.
func (h *QuotationsHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	quotations, err := h.quotations.ListOwn(c.Context(), principal.ID(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQuotationResponses(quotations)})
}

// Accept POST /quotations/:id/accept.
func (h *QuotationsHandler) Accept(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	contract, err := h.quotations.Accept(c.Context(), principal.ID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "contract": dto.NewContractResponse(contract)})
}

// Reject POST /quotations/:id/reject.
func (h *QuotationsHandler) Reject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	quotation, err := h.quotations.Reject(c.Context(), principal.ID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQuotationResponse(quotation)})
}

// Withdraw POST /quotations/:id/withdraw.
func (h *QuotationsHandler) Withdraw(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	quotation, err := h.quotations.Withdraw(c.Context(), principal.ID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQuotationResponse(quotation)})
}
