package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

type contractFixture struct {
	service   *ContractService
	contracts *fakeContractRepo
	projects  *fakeProjectRepo
	reviews   *fakeReviewRepo
	dispatch  *captureDispatcher
}

func newContractFixture() *contractFixture {
	f := &contractFixture{
		contracts: newFakeContractRepo(),
		projects:  newFakeProjectRepo(),
		reviews:   newFakeReviewRepo(),
		dispatch:  newCaptureDispatcher(),
	}
	f.service = NewContractService(f.contracts, f.projects, f.reviews, f.dispatch)
	return f
}

func (f *contractFixture) storedContract(t *testing.T, status domain.ContractStatus) *domain.Contract {
	t.Helper()
	ctx := context.Background()
	project := &domain.Project{ClientID: "client-1", Title: "SAP rollout", Status: domain.ProjectStatusInProgress}
	require.NoError(t, f.projects.Create(ctx, project))

	contract := &domain.Contract{
		ExternalKey: "ck-1",
		ProjectID:   project.ID,
		QuotationID: "quotation-1",
		ClientID:    "client-1",
		ProviderID:  "provider-1",
		Amount:      10000,
		Status:      status,
	}
	require.NoError(t, f.contracts.Create(ctx, contract))
	return contract
}

func TestContractGet(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	contract := f.storedContract(t, domain.ContractStatusActive)

	client := &domain.User{ID: "client-1", Role: domain.RoleClient}
	got, err := f.service.Get(ctx, client, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ID, got.ID)

	stranger := &domain.User{ID: "client-2", Role: domain.RoleClient}
	_, err = f.service.Get(ctx, stranger, contract.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	_, err = f.service.Get(ctx, stranger, "missing")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestContractComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("client completes and the project closes with it", func(t *testing.T) {
		f := newContractFixture()
		contract := f.storedContract(t, domain.ContractStatusActive)

		completed, err := f.service.Complete(ctx, "client-1", contract.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ContractStatusCompleted, completed.Status)
		require.NotNil(t, completed.CompletedAt)

		project, err := f.projects.GetByID(ctx, contract.ProjectID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusCompleted, project.Status)

		assert.Len(t, f.dispatch.eventsOfType(events.EventContractCompleted), 1)
	})

	t.Run("provider cannot complete", func(t *testing.T) {
		f := newContractFixture()
		contract := f.storedContract(t, domain.ContractStatusActive)

		_, err := f.service.Complete(ctx, "provider-1", contract.ID)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("already completed contract is rejected", func(t *testing.T) {
		f := newContractFixture()
		contract := f.storedContract(t, domain.ContractStatusCompleted)

		_, err := f.service.Complete(ctx, "client-1", contract.ID)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})
}

func TestSubmitReview(t *testing.T) {
	ctx := context.Background()

	t.Run("records once per contract", func(t *testing.T) {
		f := newContractFixture()
		contract := f.storedContract(t, domain.ContractStatusCompleted)

		review, err := f.service.SubmitReview(ctx, "client-1", contract.ID, 5, "excellent work")
		require.NoError(t, err)
		assert.Equal(t, "provider-1", review.ProviderID)

		_, err = f.service.SubmitReview(ctx, "client-1", contract.ID, 4, "second try")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)

		assert.Len(t, f.dispatch.eventsOfType(events.EventReviewSubmitted), 1)
	})

	t.Run("rating bounds", func(t *testing.T) {
		f := newContractFixture()
		contract := f.storedContract(t, domain.ContractStatusCompleted)

		for _, rating := range []int{0, 6} {
			_, err := f.service.SubmitReview(ctx, "client-1", contract.ID, rating, "")
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		}
	})

	t.Run("active contract cannot be reviewed", func(t *testing.T) {
		f := newContractFixture()
		contract := f.storedContract(t, domain.ContractStatusActive)

		_, err := f.service.SubmitReview(ctx, "client-1", contract.ID, 5, "")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})
}
