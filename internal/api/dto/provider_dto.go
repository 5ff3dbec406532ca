package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// AddPortfolioItemRequest payload.
type AddPortfolioItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Link        *string `json:"link"`
}

// PortfolioItemResponse is the wire shape of a portfolio item.
type PortfolioItemResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        *string   `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPortfolioItemResponse maps a domain item.
func NewPortfolioItemResponse(item *domain.PortfolioItem) PortfolioItemResponse {
	return PortfolioItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Link:        item.Link,
		CreatedAt:   item.CreatedAt,
	}
}

// NewPortfolioItemResponses maps a slice of items.
func NewPortfolioItemResponses(items []domain.PortfolioItem) []PortfolioItemResponse {
	result := make([]PortfolioItemResponse, 0, len(items))
	for i := range items {
		result = append(result, NewPortfolioItemResponse(&items[i]))
	}
	return result
}

// ProviderProfileResponse is the public provider page.
type ProviderProfileResponse struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Headline      *string                 `json:"headline,omitempty"`
	Company       *string                 `json:"company,omitempty"`
	Verified      bool                    `json:"verified"`
	AverageRating float64                 `json:"averageRating"`
	Portfolio     []PortfolioItemResponse `json:"portfolio"`
	Reviews       []ReviewResponse        `json:"reviews"`
}

// NewProviderProfileResponse assembles the public page from its parts.
func NewProviderProfileResponse(user *domain.User, avg float64, portfolio []domain.PortfolioItem, reviews []domain.Review) ProviderProfileResponse {
	return ProviderProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Headline:      user.Headline,
		Company:       user.Company,
		Verified:      user.Verified,
		AverageRating: avg,
		Portfolio:     NewPortfolioItemResponses(portfolio),
		Reviews:       NewReviewResponses(reviews),
	}
}
