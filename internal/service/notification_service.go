package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// NotificationService persists inbox entries for domain events and serves the
// notification endpoints.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to the events that notify a counterparty.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventQuotationReceived, n.handleQuotationReceived)
	n.dispatcher.Subscribe(events.EventQuotationAccepted, n.handleQuotationAccepted)
	n.dispatcher.Subscribe(events.EventQuotationRejected, n.handleQuotationRejected)
	n.dispatcher.Subscribe(events.EventContractCreated, n.handleContractCreated)
	n.dispatcher.Subscribe(events.EventContractCompleted, n.handleContractCompleted)
	n.dispatcher.Subscribe(events.EventPaymentRecorded, n.handlePaymentRecorded)
	n.dispatcher.Subscribe(events.EventChatMessageSent, n.handleChatMessageSent)
	n.dispatcher.Subscribe(events.EventReviewSubmitted, n.handleReviewSubmitted)
}

// List returns the caller's notifications.
func (n *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	return n.notifications.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

// MarkRead marks one notification read for its owner. Existence is checked
// before ownership; re-marking is a no-op that still succeeds.
func (n *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	notification, err := n.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("notification", nil)
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, apperrors.NewForbidden("not your notification")
	}
	return n.notifications.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every unread notification of requestedUserID read. The
// requested id must equal the caller's own id; no write happens otherwise.
func (n *NotificationService) MarkAllRead(ctx context.Context, callerID, requestedUserID string) (int64, error) {
	if requestedUserID == "" {
		return 0, apperrors.NewValidationError("userId required", nil)
	}
	if requestedUserID != callerID {
		return 0, apperrors.NewForbidden("cannot mark another user's notifications")
	}
	return n.notifications.MarkAllRead(ctx, callerID)
}

func (n *NotificationService) handleQuotationReceived(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.QuotationPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationQuotationReceived,
		"New quotation received",
		fmt.Sprintf("A provider quoted %.2f on %q", payload.Amount, payload.ProjectTitle))
}

func (n *NotificationService) handleQuotationAccepted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.QuotationPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationQuotationAccepted,
		"Quotation accepted",
		fmt.Sprintf("Your quotation on %q was accepted", payload.ProjectTitle))
}

func (n *NotificationService) handleQuotationRejected(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.QuotationPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationQuotationRejected,
		"Quotation declined",
		fmt.Sprintf("Your quotation on %q was declined", payload.ProjectTitle))
}

func (n *NotificationService) handleContractCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContractPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationContractCreated,
		"Contract created",
		fmt.Sprintf("Contract %s is active", payload.ExternalKey))
}

func (n *NotificationService) handleContractCompleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContractPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationContractCompleted,
		"Contract completed",
		fmt.Sprintf("Contract %s was completed", payload.ExternalKey))
}

func (n *NotificationService) handlePaymentRecorded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PaymentRecordedPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationPaymentRecorded,
		"Payment received",
		fmt.Sprintf("A payment of %.2f was recorded", payload.Amount))
}

func (n *NotificationService) handleChatMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ChatMessageSentPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationChatMessage,
		"New message", payload.BodyPreview)
}

func (n *NotificationService) handleReviewSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReviewSubmittedPayload)
	if !ok {
		return nil
	}
	return n.store(ctx, event, domain.NotificationReviewSubmitted,
		"New review",
		fmt.Sprintf("You received a %d-star review", payload.Rating))
}

func (n *NotificationService) store(ctx context.Context, event events.Event, notifType domain.NotificationType, title, body string) error {
	if event.RecipientID == "" {
		return nil
	}
	notification := &domain.Notification{
		UserID: event.RecipientID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Error("store notification", zap.Error(err), zap.String("event", string(event.Type)))
		return err
	}
	return nil
}
