package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// ContractService coordinates the contract lifecycle and reviews.
type ContractService struct {
	contracts  repository.ContractRepository
	projects   repository.ProjectRepository
	reviews    repository.ReviewRepository
	dispatcher events.Dispatcher
}

// NewContractService constructs the service.
func NewContractService(contracts repository.ContractRepository, projects repository.ProjectRepository, reviews repository.ReviewRepository, dispatcher events.Dispatcher) *ContractService {
	return &ContractService{contracts: contracts, projects: projects, reviews: reviews, dispatcher: dispatcher}
}

// ListMine returns contracts where the caller is a party.
func (s *ContractService) ListMine(ctx context.Context, userID string, limit, offset int) ([]domain.Contract, error) {
	return s.contracts.ListByParty(ctx, userID, limit, offset)
}

// Get fetches a contract for one of its parties or an admin.
func (s *ContractService) Get(ctx context.Context, caller *domain.User, contractID string) (*domain.Contract, error) {
	contract, err := s.fetch(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !contract.Party(caller.ID) && caller.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("not a contract party")
	}
	return contract, nil
}

// Complete marks an active contract done; only the client party may complete.
// The underlying project completes with it.
func (s *ContractService) Complete(ctx context.Context, clientID, contractID string) (*domain.Contract, error) {
	contract, err := s.fetch(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.ClientID != clientID {
		return nil, apperrors.NewForbidden("only the client may complete the contract")
	}
	if contract.Status != domain.ContractStatusActive {
		return nil, apperrors.NewValidationError("contract is not active", nil)
	}

	now := time.Now()
	contract.Status = domain.ContractStatusCompleted
	contract.CompletedAt = &now
	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, contract.ProjectID)
	if err == nil {
		project.Status = domain.ProjectStatusCompleted
		project.ClosedAt = &now
		if err := s.projects.Update(ctx, project); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventContractCompleted,
		ActorID:     clientID,
		RecipientID: contract.ProviderID,
		Payload: events.ContractPayload{
			ContractID:  contract.ID,
			ExternalKey: contract.ExternalKey,
			ProjectID:   contract.ProjectID,
			Amount:      contract.Amount,
		},
	})
	return contract, nil
}

// SubmitReview records the client's rating after completion. One review per
// contract.
func (s *ContractService) SubmitReview(ctx context.Context, clientID, contractID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	contract, err := s.fetch(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.ClientID != clientID {
		return nil, apperrors.NewForbidden("only the client may review the contract")
	}
	if contract.Status != domain.ContractStatusCompleted {
		return nil, apperrors.NewValidationError("contract is not completed", nil)
	}

	if _, err := s.reviews.GetByContract(ctx, contractID); err == nil {
		return nil, apperrors.NewConflict("contract already reviewed", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	review := &domain.Review{
		ContractID: contract.ID,
		ProviderID: contract.ProviderID,
		ClientID:   contract.ClientID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventReviewSubmitted,
		ActorID:     clientID,
		RecipientID: contract.ProviderID,
		Payload: events.ReviewSubmittedPayload{
			ContractID: contract.ID,
			Rating:     rating,
		},
	})
	return review, nil
}

func (s *ContractService) fetch(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contract", nil)
		}
		return nil, err
	}
	return contract, nil
}
