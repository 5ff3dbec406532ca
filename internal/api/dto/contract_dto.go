package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// ContractResponse is the wire shape of a contract.
type ContractResponse struct {
	ID          string                `json:"id"`
	ExternalKey string                `json:"externalKey"`
	ProjectID   string                `json:"projectId"`
	QuotationID string                `json:"quotationId"`
	ClientID    string                `json:"clientId"`
	ProviderID  string                `json:"providerId"`
	Amount      float64               `json:"amount"`
	Status      domain.ContractStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
}

// NewContractResponse maps a domain contract.
func NewContractResponse(contract *domain.Contract) ContractResponse {
	return ContractResponse{
		ID:          contract.ID,
		ExternalKey: contract.ExternalKey,
		ProjectID:   contract.ProjectID,
		QuotationID: contract.QuotationID,
		ClientID:    contract.ClientID,
		ProviderID:  contract.ProviderID,
		Amount:      contract.Amount,
		Status:      contract.Status,
		CreatedAt:   contract.CreatedAt,
		CompletedAt: contract.CompletedAt,
	}
}

// NewContractResponses maps a slice of contracts.
func NewContractResponses(contracts []domain.Contract) []ContractResponse {
	result := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		result = append(result, NewContractResponse(&contracts[i]))
	}
	return result
}

// ReviewRequest payload for contract reviews.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse is the wire shape of a review.
type ReviewResponse struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contractId"`
	ProviderID string    `json:"providerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReviewResponse maps a domain review.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		ContractID: review.ContractID,
		ProviderID: review.ProviderID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

// NewReviewResponses maps a slice of reviews.
func NewReviewResponses(reviews []domain.Review) []ReviewResponse {
	result := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, NewReviewResponse(&reviews[i]))
	}
	return result
}
