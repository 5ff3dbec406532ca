package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/consulting-marketplace/internal/api/dto"
	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/service"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// ContractsHandler manages contract endpoints.
type ContractsHandler struct {
	contracts *service.ContractService
}

// NewContractsHandler constructs handler.
func NewContractsHandler(contracts *service.ContractService) *ContractsHandler {
	return &ContractsHandler{contracts: contracts}
}

// ListMine GET /contracts.
func (h *ContractsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	contracts, err := h.contracts.ListMine(c.Context(), principal.ID(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContractResponses(contracts)})
}

// Get GET /contracts/:id.
func (h *ContractsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	contract, err := h.contracts.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewContractResponse(contract)})
}

// Complete POST /contracts/:id/complete.
func (h *ContractsHandler) Complete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	contract, err := h.contracts.Complete(c.Context(), principal.ID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "contract": dto.NewContractResponse(contract)})
}

// SubmitReview POST /contracts/:id/review.
func (h *ContractsHandler) SubmitReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.contracts.SubmitReview(c.Context(), principal.ID(), c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}
