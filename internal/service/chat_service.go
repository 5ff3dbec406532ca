package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

const presenceTTL = 5 * time.Minute

// ChatService coordinates chat sessions between contract parties.
type ChatService struct {
	chats      repository.ChatRepository
	contracts  repository.ContractRepository
	redis      *redis.Client
	dispatcher events.Dispatcher
}

// NewChatService constructs the service. The redis client is optional; chat
// works without presence tracking.
func NewChatService(chats repository.ChatRepository, contracts repository.ContractRepository, redisClient *redis.Client, dispatcher events.Dispatcher) *ChatService {
	return &ChatService{chats: chats, contracts: contracts, redis: redisClient, dispatcher: dispatcher}
}

// OpenSession returns the chat session for a contract, creating one when it
// does not exist yet. Idempotent per contract.
func (s *ChatService) OpenSession(ctx context.Context, callerID, contractID string) (*domain.ChatSession, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contract", nil)
		}
		return nil, err
	}
	if !contract.Party(callerID) {
		return nil, apperrors.NewForbidden("not a contract party")
	}

	session, err := s.chats.GetSessionByContract(ctx, contractID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	session = &domain.ChatSession{
		ExternalKey: uuid.NewString(),
		ContractID:  contract.ID,
		ClientID:    contract.ClientID,
		ProviderID:  contract.ProviderID,
	}
	if err := s.chats.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns the caller's sessions.
func (s *ChatService) ListSessions(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	return s.chats.ListSessionsByUser(ctx, userID)
}

// ListMessages returns session messages for a participant.
func (s *ChatService) ListMessages(ctx context.Context, callerID, sessionID string, limit, offset int) ([]domain.ChatMessage, error) {
	session, err := s.fetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Party(callerID) {
		return nil, apperrors.NewForbidden("not a session participant")
	}
	return s.chats.ListMessages(ctx, sessionID, limit, offset)
}

// SendMessage appends a message and refreshes the sender's presence key.
func (s *ChatService) SendMessage(ctx context.Context, callerID, sessionID, body string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}

	session, err := s.fetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Party(callerID) {
		return nil, apperrors.NewForbidden("not a session participant")
	}

	message := &domain.ChatMessage{
		SessionID: session.ID,
		SenderID:  callerID,
		Body:      strings.TrimSpace(body),
	}
	if err := s.chats.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, presenceKey(callerID), time.Now().Unix(), presenceTTL).Err()
	}

	recipient := session.ClientID
	if callerID == session.ClientID {
		recipient = session.ProviderID
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventChatMessageSent,
		ActorID:     callerID,
		RecipientID: recipient,
		Payload: events.ChatMessageSentPayload{
			SessionID:   session.ID,
			MessageID:   message.ID,
			BodyPreview: preview(message.Body, 120),
		},
	})
	return message, nil
}

func (s *ChatService) fetchSession(ctx context.Context, sessionID string) (*domain.ChatSession, error) {
	session, err := s.chats.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("chat session", nil)
		}
		return nil, err
	}
	return session, nil
}

func presenceKey(userID string) string {
	return "chat:presence:" + userID
}

func preview(body string, max int) string {
	if len(body) <= max {
		return body
	}
	return body[:max]
}
