package domain

import "time"

// Board is the collaboration surface attached to a contract.
type Board struct {
	ID         string
	ContractID string
	Title      string
	CreatedAt  time.Time
}

// BoardComment is a comment on a board. Only the author may edit or delete it.
type BoardComment struct {
	ID        string
	BoardID   string
	AuthorID  string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
