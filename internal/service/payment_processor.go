package service

import (
	"context"

	"github.com/google/uuid"
)

// ChargeRequest describes one charge submitted to the processor.
type ChargeRequest struct {
	ContractID string
	PayerID    string
	PayeeID    string
	Amount     float64
}

// PaymentProcessor is the port to the external payment collaborator. The real
// integration is provisioned per deployment; the noop backend records charges
// as succeeded without moving money.
type PaymentProcessor interface {
	Charge(ctx context.Context, req ChargeRequest) (ref string, err error)
}

type noopProcessor struct{}

// NewNoopProcessor returns the development processor backend.
func NewNoopProcessor() PaymentProcessor {
	return noopProcessor{}
}

func (noopProcessor) Charge(_ context.Context, _ ChargeRequest) (string, error) {
	return "noop-" + uuid.NewString(), nil
}
