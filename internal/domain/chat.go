package domain

import "time"

// ChatSession is the message channel between the two parties of a contract.
// At most one session exists per contract.
type ChatSession struct {
	ID          string
	ExternalKey string
	ContractID  string
	ClientID    string
	ProviderID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Party reports whether userID participates in the session.
func (s *ChatSession) Party(userID string) bool {
	return s.ClientID == userID || s.ProviderID == userID
}

// ChatMessage is one message inside a session.
type ChatMessage struct {
	ID        string
	SessionID string
	SenderID  string
	Body      string
	CreatedAt time.Time
}
