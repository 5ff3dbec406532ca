package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// SubmitQuotationRequest payload for provider offers.
type SubmitQuotationRequest struct {
	Amount       float64 `json:"amount"`
	DeliveryDays int     `json:"deliveryDays"`
	Message      string  `json:"message"`
}

// QuotationResponse is the wire shape of a quotation.
type QuotationResponse struct {
	ID           string                 `json:"id"`
	ProjectID    string                 `json:"projectId"`
	ProviderID   string                 `json:"providerId"`
	Amount       float64                `json:"amount"`
	DeliveryDays int                    `json:"deliveryDays"`
	Message      string                 `json:"message"`
	Status       domain.QuotationStatus `json:"status"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// NewQuotationResponse maps a domain quotation.
func NewQuotationResponse(quotation *domain.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:           quotation.ID,
		ProjectID:    quotation.ProjectID,
		ProviderID:   quotation.ProviderID,
		Amount:       quotation.Amount,
		DeliveryDays: quotation.DeliveryDays,
		Message:      quotation.Message,
		Status:       quotation.Status,
		CreatedAt:    quotation.CreatedAt,
	}
}

// NewQuotationResponses maps a slice of quotations.
func NewQuotationResponses(quotations []domain.Quotation) []QuotationResponse {
	result := make([]QuotationResponse, 0, len(quotations))
	for i := range quotations {
		result = append(result, NewQuotationResponse(&quotations[i]))
	}
	return result
}
