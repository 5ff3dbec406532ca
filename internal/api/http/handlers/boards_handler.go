package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/consulting-marketplace/internal/api/dto"
	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/service"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// BoardsHandler manages collaboration board endpoints.
type BoardsHandler struct {
	boards *service.BoardService
}

// NewBoardsHandler constructs handler.
func NewBoardsHandler(boards *service.BoardService) *BoardsHandler {
	return &BoardsHandler{boards: boards}
}

// Get GET /boards/:id.
func (h *BoardsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	board, comments, err := h.boards.Get(c.Context(), principal.ID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBoardResponse(board, comments)})
}

// AddComment POST /boards/:id/comments.
func (h *BoardsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.BoardCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.boards.AddComment(c.Context(), principal.ID(), c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBoardCommentResponse(comment)})
}

// UpdateComment PATCH /boards/comments/:id.
func (h *BoardsHandler) UpdateComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.BoardCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.boards.UpdateComment(c.Context(), principal.ID(), c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBoardCommentResponse(comment)})
}

// DeleteComment DELETE /boards/comments/:id.
func (h *BoardsHandler) DeleteComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.boards.DeleteComment(c.Context(), principal.ID(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "comment removed"})
}
