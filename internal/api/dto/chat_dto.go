package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// OpenChatSessionRequest payload.
type OpenChatSessionRequest struct {
	ContractID string `json:"contractId"`
}

// SendChatMessageRequest payload.
type SendChatMessageRequest struct {
	Body string `json:"body"`
}

// ChatSessionResponse is the wire shape of a session.
type ChatSessionResponse struct {
	ID          string    `json:"id"`
	ExternalKey string    `json:"externalKey"`
	ContractID  string    `json:"contractId"`
	ClientID    string    `json:"clientId"`
	ProviderID  string    `json:"providerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewChatSessionResponse maps a domain session.
func NewChatSessionResponse(session *domain.ChatSession) ChatSessionResponse {
	return ChatSessionResponse{
		ID:          session.ID,
		ExternalKey: session.ExternalKey,
		ContractID:  session.ContractID,
		ClientID:    session.ClientID,
		ProviderID:  session.ProviderID,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}

// NewChatSessionResponses maps a slice of sessions.
func NewChatSessionResponses(sessions []domain.ChatSession) []ChatSessionResponse {
	result := make([]ChatSessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, NewChatSessionResponse(&sessions[i]))
	}
	return result
}

// ChatMessageResponse is the wire shape of a message.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	SenderID  string    `json:"senderId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewChatMessageResponse maps a domain message.
func NewChatMessageResponse(message *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        message.ID,
		SessionID: message.SessionID,
		SenderID:  message.SenderID,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}

// NewChatMessageResponses maps a slice of messages.
func NewChatMessageResponses(messages []domain.ChatMessage) []ChatMessageResponse {
	result := make([]ChatMessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, NewChatMessageResponse(&messages[i]))
	}
	return result
}
