package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
)

// ClientStats aggregates the client dashboard numbers.
type ClientStats struct {
	TotalProjects     int64   `json:"totalProjects"`
	ActiveProjects    int64   `json:"activeProjects"`
	PendingQuotations int64   `json:"pendingQuotations"`
	TotalSpent        float64 `json:"totalSpent"`
}

// ProviderStats aggregates the provider dashboard numbers.
type ProviderStats struct {
	TotalQuotations    int64   `json:"totalQuotations"`
	AcceptedQuotations int64   `json:"acceptedQuotations"`
	TotalEarnings      float64 `json:"totalEarnings"`
	AverageRating      float64 `json:"averageRating"`
	ProfileViews       int64   `json:"profileViews"`
}

// DashboardService runs the independent dashboard sub-queries concurrently
// and joins before responding. Any sub-query failure fails the whole
// aggregate; there is no partial dashboard.
type DashboardService struct {
	projects   repository.ProjectRepository
	quotations repository.QuotationRepository
	payments   repository.PaymentRepository
	reviews    repository.ReviewRepository
	redis      *redis.Client
}

// DashboardDependencies bundles requirements for the dashboard service.
type DashboardDependencies struct {
	ProjectRepo   repository.ProjectRepository
	QuotationRepo repository.QuotationRepository
	PaymentRepo   repository.PaymentRepository
	ReviewRepo    repository.ReviewRepository
	Redis         *redis.Client
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		projects:   deps.ProjectRepo,
		quotations: deps.QuotationRepo,
		payments:   deps.PaymentRepo,
		reviews:    deps.ReviewRepo,
		redis:      deps.Redis,
	}
}

// ClientStats computes the client dashboard.
func (s *DashboardService) ClientStats(ctx context.Context, clientID string) (*ClientStats, error) {
	stats := &ClientStats{}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		count, err := s.projects.CountByClient(ctx, clientID)
		stats.TotalProjects = count
		return err
	})
	group.Go(func() error {
		count, err := s.projects.CountByClient(ctx, clientID,
			domain.ProjectStatusPublished, domain.ProjectStatusInProgress)
		stats.ActiveProjects = count
		return err
	})
	group.Go(func() error {
		count, err := s.quotations.CountPendingForClientProjects(ctx, clientID)
		stats.PendingQuotations = count
		return err
	})
	group.Go(func() error {
		total, err := s.payments.SumSucceededByPayer(ctx, clientID)
		stats.TotalSpent = total
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// ProviderStats computes the provider dashboard.
func (s *DashboardService) ProviderStats(ctx context.Context, providerID string) (*ProviderStats, error) {
	stats := &ProviderStats{}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		count, err := s.quotations.CountByProvider(ctx, providerID)
		stats.TotalQuotations = count
		return err
	})
	group.Go(func() error {
		count, err := s.quotations.CountByProvider(ctx, providerID, domain.QuotationStatusAccepted)
		stats.AcceptedQuotations = count
		return err
	})
	group.Go(func() error {
		total, err := s.payments.SumSucceededByPayee(ctx, providerID)
		stats.TotalEarnings = total
		return err
	})
	group.Go(func() error {
		avg, err := s.reviews.AverageForProvider(ctx, providerID)
		stats.AverageRating = avg
		return err
	})
	group.Go(func() error {
		views, err := s.profileViews(ctx, providerID)
		stats.ProfileViews = views
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordProfileView bumps the provider's view counter.
func (s *DashboardService) RecordProfileView(ctx context.Context, providerID string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Incr(ctx, profileViewKey(providerID)).Err()
}

func (s *DashboardService) profileViews(ctx context.Context, providerID string) (int64, error) {
	if s.redis == nil {
		return 0, nil
	}
	views, err := s.redis.Get(ctx, profileViewKey(providerID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return views, err
}

func profileViewKey(providerID string) string {
	return "provider:views:" + providerID
}
