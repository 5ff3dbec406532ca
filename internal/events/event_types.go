package events

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProjectPublished  EventType = "project_published"
	EventQuotationReceived EventType = "quotation_received"
	EventQuotationAccepted EventType = "quotation_accepted"
	EventQuotationRejected EventType = "quotation_rejected"
	EventContractCreated   EventType = "contract_created"
	EventContractCompleted EventType = "contract_completed"
	EventPaymentRecorded   EventType = "payment_recorded"
	EventChatMessageSent   EventType = "chat_message_sent"
	EventReviewSubmitted   EventType = "review_submitted"
)

// Event represents a domain event emitted by services. RecipientID is the
// counterparty that should be notified, when one exists.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ActorID     string      `json:"actor_id"`
	RecipientID string      `json:"recipient_id,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ProjectPublishedPayload payload.
type ProjectPublishedPayload struct {
	ProjectID string  `json:"project_id"`
	Title     string  `json:"title"`
	Budget    float64 `json:"budget"`
}

// QuotationPayload covers quotation received/accepted/rejected events.
type QuotationPayload struct {
	QuotationID  string  `json:"quotation_id"`
	ProjectID    string  `json:"project_id"`
	ProjectTitle string  `json:"project_title"`
	Amount       float64 `json:"amount"`
}

// ContractPayload covers contract created/completed events.
type ContractPayload struct {
	ContractID  string  `json:"contract_id"`
	ExternalKey string  `json:"external_key"`
	ProjectID   string  `json:"project_id"`
	Amount      float64 `json:"amount"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	PaymentID  string               `json:"payment_id"`
	ContractID string               `json:"contract_id"`
	Amount     float64              `json:"amount"`
	Status     domain.PaymentStatus `json:"status"`
}

// ChatMessageSentPayload payload.
type ChatMessageSentPayload struct {
	SessionID   string `json:"session_id"`
	MessageID   string `json:"message_id"`
	BodyPreview string `json:"body_preview"`
}

// ReviewSubmittedPayload payload.
type ReviewSubmittedPayload struct {
	ContractID string `json:"contract_id"`
	Rating     int    `json:"rating"`
}
