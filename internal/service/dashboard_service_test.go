package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

type dashboardFixture struct {
	service    *DashboardService
	projects   *fakeProjectRepo
	quotations *fakeQuotationRepo
	payments   *fakePaymentRepo
	reviews    *fakeReviewRepo
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		projects:   newFakeProjectRepo(),
		quotations: newFakeQuotationRepo(),
		payments:   newFakePaymentRepo(),
		reviews:    newFakeReviewRepo(),
	}
	f.service = NewDashboardService(DashboardDependencies{
		ProjectRepo:   f.projects,
		QuotationRepo: f.quotations,
		PaymentRepo:   f.payments,
		ReviewRepo:    f.reviews,
	})
	return f
}

func TestClientStats(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	for _, status := range []domain.ProjectStatus{
		domain.ProjectStatusDraft,
		domain.ProjectStatusPublished,
		domain.ProjectStatusInProgress,
		domain.ProjectStatusCompleted,
	} {
		require.NoError(t, f.projects.Create(ctx, &domain.Project{ClientID: "client-1", Title: "p", Status: status}))
	}
	require.NoError(t, f.quotations.Create(ctx, &domain.Quotation{ProjectID: "project-2", ProviderID: "provider-1", Amount: 100, Status: domain.QuotationStatusPending}))
	require.NoError(t, f.payments.Create(ctx, &domain.Payment{ContractID: "contract-1", PayerID: "client-1", PayeeID: "provider-1", Amount: 1500, Status: domain.PaymentStatusSucceeded}))
	require.NoError(t, f.payments.Create(ctx, &domain.Payment{ContractID: "contract-1", PayerID: "client-1", PayeeID: "provider-1", Amount: 999, Status: domain.PaymentStatusFailed}))

	stats, err := f.service.ClientStats(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalProjects)
	assert.Equal(t, int64(2), stats.ActiveProjects)
	assert.Equal(t, int64(1), stats.PendingQuotations)
	assert.InDelta(t, 1500, stats.TotalSpent, 0.001)
}

func TestProviderStats(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	require.NoError(t, f.quotations.Create(ctx, &domain.Quotation{ProjectID: "project-1", ProviderID: "provider-1", Amount: 100, Status: domain.QuotationStatusAccepted}))
	require.NoError(t, f.quotations.Create(ctx, &domain.Quotation{ProjectID: "project-2", ProviderID: "provider-1", Amount: 100, Status: domain.QuotationStatusRejected}))
	require.NoError(t, f.payments.Create(ctx, &domain.Payment{ContractID: "contract-1", PayerID: "client-1", PayeeID: "provider-1", Amount: 2000, Status: domain.PaymentStatusSucceeded}))
	require.NoError(t, f.reviews.Create(ctx, &domain.Review{ContractID: "contract-1", ProviderID: "provider-1", ClientID: "client-1", Rating: 4}))
	require.NoError(t, f.reviews.Create(ctx, &domain.Review{ContractID: "contract-2", ProviderID: "provider-1", ClientID: "client-2", Rating: 5}))

	stats, err := f.service.ProviderStats(ctx, "provider-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalQuotations)
	assert.Equal(t, int64(1), stats.AcceptedQuotations)
	assert.InDelta(t, 2000, stats.TotalEarnings, 0.001)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
	assert.Zero(t, stats.ProfileViews)
}

func TestDashboardFailsWhenAnySubQueryFails(t *testing.T) {
	ctx := context.Background()

	t.Run("client aggregate", func(t *testing.T) {
		f := newDashboardFixture()
		f.payments.sumErr = errors.New("store unavailable")

		stats, err := f.service.ClientStats(ctx, "client-1")
		require.Error(t, err)
		assert.Nil(t, stats)
	})

	t.Run("provider aggregate", func(t *testing.T) {
		f := newDashboardFixture()
		f.reviews.avgErr = errors.New("store unavailable")

		stats, err := f.service.ProviderStats(ctx, "provider-1")
		require.Error(t, err)
		assert.Nil(t, stats)
	})
}
