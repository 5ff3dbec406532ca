package domain

import "time"

// Role is the coarse capability tag attached to every account.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for marketplace accounts, client and provider alike.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool
	Company      *string
	Headline     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
