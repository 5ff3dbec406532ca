package domain

import "time"

// ContractStatus enumerates contract lifecycle states.
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// Contract binds a client and a provider after a quotation is accepted.
type Contract struct {
	ID          string
	ExternalKey string
	ProjectID   string
	QuotationID string
	ClientID    string
	ProviderID  string
	Amount      float64
	Status      ContractStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// Party reports whether userID is one of the contract parties.
func (c *Contract) Party(userID string) bool {
	return c.ClientID == userID || c.ProviderID == userID
}
