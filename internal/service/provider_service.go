package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// ProviderProfile is the public view of a provider.
type ProviderProfile struct {
	User          *domain.User
	AverageRating float64
	Portfolio     []domain.PortfolioItem
	Reviews       []domain.Review
}

// ProviderService serves public profiles and providers' own portfolios.
type ProviderService struct {
	users     repository.UserRepository
	portfolio repository.PortfolioRepository
	reviews   repository.ReviewRepository
	dashboard *DashboardService
}

// NewProviderService constructs the service.
func NewProviderService(users repository.UserRepository, portfolio repository.PortfolioRepository, reviews repository.ReviewRepository, dashboard *DashboardService) *ProviderService {
	return &ProviderService{users: users, portfolio: portfolio, reviews: reviews, dashboard: dashboard}
}

// PublicProfile returns a provider's public page and records the view.
func (s *ProviderService) PublicProfile(ctx context.Context, providerID string) (*ProviderProfile, error) {
	user, err := s.users.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("provider", nil)
		}
		return nil, err
	}
	if user.Role != domain.RoleProvider {
		return nil, apperrors.NewNotFound("provider", nil)
	}

	items, err := s.portfolio.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByProvider(ctx, providerID, 10, 0)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviews.AverageForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	s.dashboard.RecordProfileView(ctx, providerID)

	return &ProviderProfile{
		User:          user,
		AverageRating: avg,
		Portfolio:     items,
		Reviews:       reviews,
	}, nil
}

// PortfolioInput describes a new portfolio item.
type PortfolioInput struct {
	Title       string
	Description string
	Link        *string
}

// ListPortfolio returns the provider's own items.
func (s *ProviderService) ListPortfolio(ctx context.Context, providerID string) ([]domain.PortfolioItem, error) {
	return s.portfolio.ListByProvider(ctx, providerID)
}

// AddPortfolioItem stores a showcase item.
func (s *ProviderService) AddPortfolioItem(ctx context.Context, providerID string, input PortfolioInput) (*domain.PortfolioItem, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	item := &domain.PortfolioItem{
		ProviderID:  providerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Link:        input.Link,
	}
	if err := s.portfolio.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeletePortfolioItem removes an owned item. Existence before ownership.
func (s *ProviderService) DeletePortfolioItem(ctx context.Context, providerID, itemID string) error {
	item, err := s.portfolio.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("portfolio item", nil)
		}
		return err
	}
	if item.ProviderID != providerID {
		return apperrors.NewForbidden("not your portfolio item")
	}
	return s.portfolio.Delete(ctx, itemID)
}
