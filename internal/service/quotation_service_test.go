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

type quotationFixture struct {
	service    *QuotationService
	projects   *fakeProjectRepo
	quotations *fakeQuotationRepo
	contracts  *fakeContractRepo
	boards     *fakeBoardRepo
	chats      *fakeChatRepo
	dispatcher *captureDispatcher
}

func newQuotationFixture() *quotationFixture {
	f := &quotationFixture{
		projects:   newFakeProjectRepo(),
		quotations: newFakeQuotationRepo(),
		contracts:  newFakeContractRepo(),
		boards:     newFakeBoardRepo(),
		chats:      newFakeChatRepo(),
		dispatcher: newCaptureDispatcher(),
	}
	f.service = NewQuotationService(QuotationDependencies{
		QuotationRepo: f.quotations,
		ProjectRepo:   f.projects,
		ContractRepo:  f.contracts,
		BoardRepo:     f.boards,
		ChatRepo:      f.chats,
		Dispatcher:    f.dispatcher,
	})
	return f
}

func (f *quotationFixture) publishedProject(t *testing.T, clientID string) *domain.Project {
	t.Helper()
	project := &domain.Project{
		ClientID: clientID,
		Title:    "SAP S/4HANA migration",
		Budget:   50000,
		Status:   domain.ProjectStatusPublished,
	}
	require.NoError(t, f.projects.Create(context.Background(), project))
	return project
}

func (f *quotationFixture) pendingQuotation(t *testing.T, projectID, providerID string, amount float64) *domain.Quotation {
	t.Helper()
	quotation := &domain.Quotation{
		ProjectID:    projectID,
		ProviderID:   providerID,
		Amount:       amount,
		DeliveryDays: 30,
		Status:       domain.QuotationStatusPending,
	}
	require.NoError(t, f.quotations.Create(context.Background(), quotation))
	return quotation
}

func TestQuotationSubmit(t *testing.T) {
	ctx := context.Background()
	provider := &domain.User{ID: "provider-1", Role: domain.RoleProvider, Verified: true}

	t.Run("creates pending quotation and notifies the client", func(t *testing.T) {
		f := newQuotationFixture()
		project := f.publishedProject(t, "client-1")

		quotation, err := f.service.Submit(ctx, provider, project.ID, QuotationInput{Amount: 12000, DeliveryDays: 20, Message: "  can start next week  "})
		require.NoError(t, err)
		assert.Equal(t, domain.QuotationStatusPending, quotation.Status)
		assert.Equal(t, "can start next week", quotation.Message)

		received := f.dispatcher.eventsOfType(events.EventQuotationReceived)
		require.Len(t, received, 1)
		assert.Equal(t, "client-1", received[0].RecipientID)
	})

	t.Run("rejects a second pending quotation on the same project", func(t *testing.T) {
		f := newQuotationFixture()
		project := f.publishedProject(t, "client-1")
		f.pendingQuotation(t, project.ID, provider.ID, 10000)

		_, err := f.service.Submit(ctx, provider, project.ID, QuotationInput{Amount: 9000, DeliveryDays: 15})
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})

	t.Run("missing project reports not found before any ownership check", func(t *testing.T) {
		f := newQuotationFixture()

		_, err := f.service.Submit(ctx, provider, "nope", QuotationInput{Amount: 9000, DeliveryDays: 15})
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("cannot quote own project", func(t *testing.T) {
		f := newQuotationFixture()
		project := f.publishedProject(t, provider.ID)

		_, err := f.service.Submit(ctx, provider, project.ID, QuotationInput{Amount: 9000, DeliveryDays: 15})
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestQuotationAcceptCascade(t *testing.T) {
	ctx := context.Background()
	f := newQuotationFixture()
	project := f.publishedProject(t, "client-1")
	accepted := f.pendingQuotation(t, project.ID, "provider-1", 12000)
	sibling := f.pendingQuotation(t, project.ID, "provider-2", 14000)

	contract, err := f.service.Accept(ctx, "client-1", accepted.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ContractStatusActive, contract.Status)
	assert.Equal(t, "client-1", contract.ClientID)
	assert.Equal(t, "provider-1", contract.ProviderID)
	assert.Equal(t, accepted.Amount, contract.Amount)
	assert.NotEmpty(t, contract.ExternalKey)

	stored, err := f.quotations.GetByID(ctx, accepted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusAccepted, stored.Status)

	rejected, err := f.quotations.GetByID(ctx, sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusRejected, rejected.Status)

	updatedProject, err := f.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusInProgress, updatedProject.Status)

	require.Len(t, f.boards.boards, 1)
	for _, board := range f.boards.boards {
		assert.Equal(t, contract.ID, board.ContractID)
	}

	session, err := f.chats.GetSessionByContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ClientID, session.ClientID)
	assert.Equal(t, contract.ProviderID, session.ProviderID)

	assert.Len(t, f.dispatcher.eventsOfType(events.EventQuotationAccepted), 1)
	assert.Len(t, f.dispatcher.eventsOfType(events.EventContractCreated), 1)
}

func TestQuotationAcceptGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown quotation is not found even for strangers", func(t *testing.T) {
		f := newQuotationFixture()

		_, err := f.service.Accept(ctx, "someone", "missing")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("other client is forbidden on an existing quotation", func(t *testing.T) {
		f := newQuotationFixture()
		project := f.publishedProject(t, "client-1")
		quotation := f.pendingQuotation(t, project.ID, "provider-1", 12000)

		_, err := f.service.Accept(ctx, "client-2", quotation.ID)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("non-pending quotation cannot be accepted", func(t *testing.T) {
		f := newQuotationFixture()
		project := f.publishedProject(t, "client-1")
		quotation := f.pendingQuotation(t, project.ID, "provider-1", 12000)
		require.NoError(t, f.quotations.UpdateStatus(ctx, quotation.ID, domain.QuotationStatusWithdrawn))

		_, err := f.service.Accept(ctx, "client-1", quotation.ID)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})
}

func TestQuotationWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newQuotationFixture()
	project := f.publishedProject(t, "client-1")
	quotation := f.pendingQuotation(t, project.ID, "provider-1", 12000)

	_, err := f.service.Withdraw(ctx, "provider-2", quotation.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	withdrawn, err := f.service.Withdraw(ctx, "provider-1", quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusWithdrawn, withdrawn.Status)
}
