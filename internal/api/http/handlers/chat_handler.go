package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/consulting-marketplace/internal/api/dto"
	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/service"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// ChatHandler manages chat session endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// OpenSession POST /chat/session.
func (h *ChatHandler) OpenSession(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OpenChatSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ContractID == "" {
		return apperrors.NewValidationError("contractId required", nil)
	}

	session, err := h.chat.OpenSession(c.Context(), principal.ID(), req.ContractID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "session": dto.NewChatSessionResponse(session)})
}

// ListSessions GET /chat/sessions.
func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	sessions, err := h.chat.ListSessions(c.Context(), principal.ID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewChatSessionResponses(sessions)})
}

// ListMessages GET /chat/sessions/:id/messages.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	limit, offset := pagination(c)
	messages, err := h.chat.ListMessages(c.Context(), principal.ID(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewChatMessageResponses(messages)})
}

// SendMessage POST /chat/sessions/:id/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SendChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.chat.SendMessage(c.Context(), principal.ID(), c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewChatMessageResponse(message)})
}
