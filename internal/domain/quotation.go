package domain

import "time"

// QuotationStatus enumerates quotation lifecycle states.
type QuotationStatus string

const (
	QuotationStatusPending   QuotationStatus = "PENDING"
	QuotationStatusAccepted  QuotationStatus = "ACCEPTED"
	QuotationStatusRejected  QuotationStatus = "REJECTED"
	QuotationStatusWithdrawn QuotationStatus = "WITHDRAWN"
)

// Quotation is a provider's offer on a published project.
type Quotation struct {
	ID           string
	ProjectID    string
	ProviderID   string
	Amount       float64
	DeliveryDays int
	Message      string
	Status       QuotationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
