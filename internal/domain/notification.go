package domain

import "time"

// NotificationType enumerates notification categories.
type NotificationType string

const (
	NotificationQuotationReceived NotificationType = "QUOTATION_RECEIVED"
	NotificationQuotationAccepted NotificationType = "QUOTATION_ACCEPTED"
	NotificationQuotationRejected NotificationType = "QUOTATION_REJECTED"
	NotificationContractCreated   NotificationType = "CONTRACT_CREATED"
	NotificationContractCompleted NotificationType = "CONTRACT_COMPLETED"
	NotificationPaymentRecorded   NotificationType = "PAYMENT_RECORDED"
	NotificationChatMessage       NotificationType = "CHAT_MESSAGE"
	NotificationReviewSubmitted   NotificationType = "REVIEW_SUBMITTED"
)

// Notification is a per-user inbox entry. ReadAt is nil until the owner marks
// it read; re-marking keeps the original timestamp.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
