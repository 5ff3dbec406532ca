package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// MarkAllReadRequest payload; userId must be the caller's own id.
type MarkAllReadRequest struct {
	UserID string `json:"userId"`
}

// NotificationResponse is the wire shape of a notification.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Type      domain.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	ReadAt    *time.Time              `json:"readAt,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      notification.Type,
		Title:     notification.Title,
		Body:      notification.Body,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}
}

// NewNotificationResponses maps a slice of notifications.
func NewNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, NewNotificationResponse(&notifications[i]))
	}
	return result
}
