package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// AddPaymentMethodRequest payload for storing an instrument.
type AddPaymentMethodRequest struct {
	Label string `json:"label"`
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// PaymentMethodResponse is the wire shape of a stored method.
type PaymentMethodResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Brand     string    `json:"brand"`
	Last4     string    `json:"last4"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPaymentMethodResponse maps a domain payment method.
func NewPaymentMethodResponse(method *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:        method.ID,
		Label:     method.Label,
		Brand:     method.Brand,
		Last4:     method.Last4,
		IsDefault: method.IsDefault,
		CreatedAt: method.CreatedAt,
	}
}

// NewPaymentMethodResponses maps a slice of methods.
func NewPaymentMethodResponses(methods []domain.PaymentMethod) []PaymentMethodResponse {
	result := make([]PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		result = append(result, NewPaymentMethodResponse(&methods[i]))
	}
	return result
}

// ChargeRequest payload for paying on a contract.
type ChargeRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentResponse is the wire shape of a recorded payment.
type PaymentResponse struct {
	ID         string               `json:"id"`
	ContractID string               `json:"contractId"`
	Amount     float64              `json:"amount"`
	Status     domain.PaymentStatus `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// NewPaymentResponse maps a domain payment.
func NewPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID,
		ContractID: payment.ContractID,
		Amount:     payment.Amount,
		Status:     payment.Status,
		CreatedAt:  payment.CreatedAt,
	}
}

// NewPaymentResponses maps a slice of payments.
func NewPaymentResponses(payments []domain.Payment) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		result = append(result, NewPaymentResponse(&payments[i]))
	}
	return result
}
