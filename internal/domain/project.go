package domain

import "time"

// ProjectStatus enumerates lifecycle states for client projects.
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusPublished  ProjectStatus = "PUBLISHED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

// Project is the aggregate for consulting engagements a client wants delivered.
// Budget is a display value converted from the exact ledger column at the read
// boundary; it is never written back as an amount.
type Project struct {
	ID          string
	ClientID    string
	Title       string
	Description string
	Budget      float64
	Status      ProjectStatus
	Skills      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
}
