package domain

import "time"

// PaymentMethod is a stored charge instrument owned by one user.
type PaymentMethod struct {
	ID        string
	UserID    string
	Label     string
	Brand     string
	Last4     string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentStatus enumerates payment outcomes.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment records one charge against a contract.
type Payment struct {
	ID           string
	ContractID   string
	PayerID      string
	PayeeID      string
	Amount       float64
	Status       PaymentStatus
	ProcessorRef *string
	CreatedAt    time.Time
}
