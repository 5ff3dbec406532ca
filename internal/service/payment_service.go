package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// PaymentService coordinates stored methods and contract charges.
type PaymentService struct {
	methods    repository.PaymentMethodRepository
	payments   repository.PaymentRepository
	contracts  repository.ContractRepository
	processor  PaymentProcessor
	dispatcher events.Dispatcher
}

// PaymentDependencies bundles requirements for the payment service.
type PaymentDependencies struct {
	MethodRepo   repository.PaymentMethodRepository
	PaymentRepo  repository.PaymentRepository
	ContractRepo repository.ContractRepository
	Processor    PaymentProcessor
	Dispatcher   events.Dispatcher
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	return &PaymentService{
		methods:    deps.MethodRepo,
		payments:   deps.PaymentRepo,
		contracts:  deps.ContractRepo,
		processor:  deps.Processor,
		dispatcher: deps.Dispatcher,
	}
}

// MethodInput describes a new stored charge instrument.
type MethodInput struct {
	Label string
	Brand string
	Last4 string
}

// ListMethods returns the caller's stored methods.
func (s *PaymentService) ListMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	return s.methods.ListByUser(ctx, userID)
}

// AddMethod stores an instrument; the first one becomes the default.
func (s *PaymentService) AddMethod(ctx context.Context, userID string, input MethodInput) (*domain.PaymentMethod, error) {
	if strings.TrimSpace(input.Label) == "" || len(input.Last4) != 4 {
		return nil, apperrors.NewValidationError("label and 4-digit last4 required", nil)
	}

	count, err := s.methods.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	method := &domain.PaymentMethod{
		UserID:    userID,
		Label:     strings.TrimSpace(input.Label),
		Brand:     strings.TrimSpace(input.Brand),
		Last4:     input.Last4,
		IsDefault: count == 0,
	}
	if err := s.methods.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// SetDefault makes the caller's method the default one. Existence is checked
// before ownership.
func (s *PaymentService) SetDefault(ctx context.Context, userID, methodID string) error {
	method, err := s.fetchMethod(ctx, methodID)
	if err != nil {
		return err
	}
	if method.UserID != userID {
		return apperrors.NewForbidden("not your payment method")
	}
	return s.methods.SetDefault(ctx, userID, methodID)
}

// DeleteMethod removes an instrument; deleting the default promotes the most
// recent remaining method.
func (s *PaymentService) DeleteMethod(ctx context.Context, userID, methodID string) error {
	method, err := s.fetchMethod(ctx, methodID)
	if err != nil {
		return err
	}
	if method.UserID != userID {
		return apperrors.NewForbidden("not your payment method")
	}
	if err := s.methods.Delete(ctx, methodID); err != nil {
		return err
	}
	if method.IsDefault {
		return s.methods.PromoteMostRecent(ctx, userID)
	}
	return nil
}

// Charge submits a payment on an active contract through the processor port.
// Only the client party may pay.
func (s *PaymentService) Charge(ctx context.Context, clientID, contractID string, amount float64) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}

	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contract", nil)
		}
		return nil, err
	}
	if contract.ClientID != clientID {
		return nil, apperrors.NewForbidden("only the client may pay on this contract")
	}
	if contract.Status != domain.ContractStatusActive {
		return nil, apperrors.NewValidationError("contract is not active", nil)
	}

	ref, err := s.processor.Charge(ctx, ChargeRequest{
		ContractID: contract.ID,
		PayerID:    contract.ClientID,
		PayeeID:    contract.ProviderID,
		Amount:     amount,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	payment := &domain.Payment{
		ContractID:   contract.ID,
		PayerID:      contract.ClientID,
		PayeeID:      contract.ProviderID,
		Amount:       amount,
		Status:       domain.PaymentStatusSucceeded,
		ProcessorRef: &ref,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:        events.EventPaymentRecorded,
		ActorID:     clientID,
		RecipientID: contract.ProviderID,
		Payload: events.PaymentRecordedPayload{
			PaymentID:  payment.ID,
			ContractID: contract.ID,
			Amount:     payment.Amount,
			Status:     payment.Status,
		},
	})
	return payment, nil
}

// ListPayments returns the payments on a contract for one of its parties.
func (s *PaymentService) ListPayments(ctx context.Context, caller *domain.User, contractID string) ([]domain.Payment, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contract", nil)
		}
		return nil, err
	}
	if !contract.Party(caller.ID) && caller.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("not a contract party")
	}
	return s.payments.ListByContract(ctx, contractID)
}

func (s *PaymentService) fetchMethod(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	method, err := s.methods.GetByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("payment method", nil)
		}
		return nil, err
	}
	return method, nil
}
