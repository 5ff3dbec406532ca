package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// QuotationService coordinates quotations and the acceptance cascade.
type QuotationService struct {
	quotations repository.QuotationRepository
	projects   repository.ProjectRepository
	contracts  repository.ContractRepository
	boards     repository.BoardRepository
	chats      repository.ChatRepository
	dispatcher events.Dispatcher
}

// QuotationDependencies bundles repositories for the quotation service.
type QuotationDependencies struct {
	QuotationRepo repository.QuotationRepository
	ProjectRepo   repository.ProjectRepository
	ContractRepo  repository.ContractRepository
	BoardRepo     repository.BoardRepository
	ChatRepo      repository.ChatRepository
	Dispatcher    events.Dispatcher
}

// NewQuotationService constructs the service.
func NewQuotationService(deps QuotationDependencies) *QuotationService {
	return &QuotationService{
		quotations: deps.QuotationRepo,
		projects:   deps.ProjectRepo,
		contracts:  deps.ContractRepo,
		boards:     deps.BoardRepo,
		chats:      deps.ChatRepo,
		dispatcher: deps.Dispatcher,
	}
}

// QuotationInput describes a provider's offer.
type QuotationInput struct {
	Amount       float64
	DeliveryDays int
	Message      string
}

// Submit creates a pending quotation on a published project. A provider may
// hold at most one pending quotation per project and cannot quote own work.
func (s *QuotationService) Submit(ctx context.Context, provider *domain.User, projectID string, input QuotationInput) (*domain.Quotation, error) {
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}
	if input.DeliveryDays <= 0 {
		return nil, apperrors.NewValidationError("delivery_days must be positive", nil)
	}

	project, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectStatusPublished {
		return nil, apperrors.NewValidationError("project is not open for quotations", nil)
	}
	if project.ClientID == provider.ID {
		return nil, apperrors.NewForbidden("cannot quote your own project")
	}

	if _, err := s.quotations.GetPendingByProjectAndProvider(ctx, projectID, provider.ID); err == nil {
		return nil, apperrors.NewConflict("pending quotation already exists for this project", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	quotation := &domain.Quotation{
		ProjectID:    projectID,
		ProviderID:   provider.ID,
		Amount:       input.Amount,
		DeliveryDays: input.DeliveryDays,
		Message:      strings.TrimSpace(input.Message),
		Status:       domain.QuotationStatusPending,
	}
	if err := s.quotations.Create(ctx, quotation); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventQuotationReceived,
		ActorID:     provider.ID,
		RecipientID: project.ClientID,
		Payload: events.QuotationPayload{
			QuotationID:  quotation.ID,
			ProjectID:    project.ID,
			ProjectTitle: project.Title,
			Amount:       quotation.Amount,
		},
	})
	return quotation, nil
}

// ListForProject returns every quotation on a project the caller owns.
func (s *QuotationService) ListForProject(ctx context.Context, clientID, projectID string) ([]domain.Quotation, error) {
	project, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, apperrors.NewForbidden("not your project")
	}
	return s.quotations.ListByProject(ctx, projectID)
}

// ListOwn returns the provider's quotations.
func (s *QuotationService) ListOwn(ctx context.Context, providerID string, limit, offset int) ([]domain.Quotation, error) {
	return s.quotations.ListByProvider(ctx, providerID, limit, offset)
}

// Accept transitions the quotation to ACCEPTED and runs the engagement
// cascade: siblings rejected, project in progress, contract plus board plus
// chat session created.
func (s *QuotationService) Accept(ctx context.Context, clientID, quotationID string) (*domain.Contract, error) {
	quotation, err := s.fetchQuotation(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	project, err := s.fetchProject(ctx, quotation.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, apperrors.NewForbidden("not your project")
	}
	if quotation.Status != domain.QuotationStatusPending {
		return nil, apperrors.NewValidationError("quotation is not pending", nil)
	}

	if err := s.quotations.UpdateStatus(ctx, quotation.ID, domain.QuotationStatusAccepted); err != nil {
		return nil, err
	}
	if err := s.quotations.RejectSiblings(ctx, project.ID, quotation.ID); err != nil {
		return nil, err
	}

	project.Status = domain.ProjectStatusInProgress
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	contract := &domain.Contract{
		ExternalKey: uuid.NewString(),
		ProjectID:   project.ID,
		QuotationID: quotation.ID,
		ClientID:    project.ClientID,
		ProviderID:  quotation.ProviderID,
		Amount:      quotation.Amount,
		Status:      domain.ContractStatusActive,
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	board := &domain.Board{ContractID: contract.ID, Title: project.Title}
	if err := s.boards.CreateBoard(ctx, board); err != nil {
		return nil, err
	}

	session := &domain.ChatSession{
		ExternalKey: uuid.NewString(),
		ContractID:  contract.ID,
		ClientID:    contract.ClientID,
		ProviderID:  contract.ProviderID,
	}
	if err := s.chats.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventQuotationAccepted,
		ActorID:     clientID,
		RecipientID: quotation.ProviderID,
		Payload: events.QuotationPayload{
			QuotationID:  quotation.ID,
			ProjectID:    project.ID,
			ProjectTitle: project.Title,
			Amount:       quotation.Amount,
		},
	})
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventContractCreated,
		ActorID:     clientID,
		RecipientID: quotation.ProviderID,
		Payload: events.ContractPayload{
			ContractID:  contract.ID,
			ExternalKey: contract.ExternalKey,
			ProjectID:   project.ID,
			Amount:      contract.Amount,
		},
	})
	return contract, nil
}

// Reject declines a pending quotation on the caller's project.
func (s *QuotationService) Reject(ctx context.Context, clientID, quotationID string) (*domain.Quotation, error) {
	quotation, err := s.fetchQuotation(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	project, err := s.fetchProject(ctx, quotation.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, apperrors.NewForbidden("not your project")
	}
	if quotation.Status != domain.QuotationStatusPending {
		return nil, apperrors.NewValidationError("quotation is not pending", nil)
	}

	if err := s.quotations.UpdateStatus(ctx, quotation.ID, domain.QuotationStatusRejected); err != nil {
		return nil, err
	}
	quotation.Status = domain.QuotationStatusRejected

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventQuotationRejected,
		ActorID:     clientID,
		RecipientID: quotation.ProviderID,
		Payload: events.QuotationPayload{
			QuotationID:  quotation.ID,
			ProjectID:    project.ID,
			ProjectTitle: project.Title,
			Amount:       quotation.Amount,
		},
	})
	return quotation, nil
}

// Withdraw lets the provider pull back a pending quotation.
func (s *QuotationService) Withdraw(ctx context.Context, providerID, quotationID string) (*domain.Quotation, error) {
	quotation, err := s.fetchQuotation(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.ProviderID != providerID {
		return nil, apperrors.NewForbidden("not your quotation")
	}
	if quotation.Status != domain.QuotationStatusPending {
		return nil, apperrors.NewValidationError("quotation is not pending", nil)
	}

	if err := s.quotations.UpdateStatus(ctx, quotation.ID, domain.QuotationStatusWithdrawn); err != nil {
		return nil, err
	}
	quotation.Status = domain.QuotationStatusWithdrawn
	return quotation, nil
}

func (s *QuotationService) fetchQuotation(ctx context.Context, id string) (*domain.Quotation, error) {
	quotation, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("quotation", nil)
		}
		return nil, err
	}
	return quotation, nil
}

func (s *QuotationService) fetchProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	return project, nil
}
