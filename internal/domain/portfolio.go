package domain

import "time"

// PortfolioItem showcases past provider work on the public profile.
type PortfolioItem struct {
	ID          string
	ProviderID  string
	Title       string
	Description string
	Link        *string
	CreatedAt   time.Time
}

// Review is the client's rating of a provider after a completed contract.
// One review per contract.
type Review struct {
	ID         string
	ContractID string
	ProviderID string
	ClientID   string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
