package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// ChatRepository encapsulates chat sessions and messages.
type ChatRepository interface {
	CreateSession(ctx context.Context, session *domain.ChatSession) error
	GetSessionByID(ctx context.Context, id string) (*domain.ChatSession, error)
	GetSessionByContract(ctx context.Context, contractID string) (*domain.ChatSession, error)
	ListSessionsByUser(ctx context.Context, userID string) ([]domain.ChatSession, error)
	CreateMessage(ctx context.Context, message *domain.ChatMessage) error
	ListMessages(ctx context.Context, sessionID string, limit, offset int) ([]domain.ChatMessage, error)
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository instantiates repository.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

const chatSessionColumns = `id, external_key, contract_id, client_id, provider_id, created_at, updated_at`

func (r *chatRepository) CreateSession(ctx context.Context, session *domain.ChatSession) error {
	const query = `
        INSERT INTO chat_sessions (external_key, contract_id, client_id, provider_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		session.ExternalKey,
		session.ContractID,
		session.ClientID,
		session.ProviderID,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
}

func (r *chatRepository) GetSessionByID(ctx context.Context, id string) (*domain.ChatSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_sessions WHERE id=$1`, chatSessionColumns)
	return scanChatSession(r.pool.QueryRow(ctx, query, id))
}

func (r *chatRepository) GetSessionByContract(ctx context.Context, contractID string) (*domain.ChatSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_sessions WHERE contract_id=$1`, chatSessionColumns)
	return scanChatSession(r.pool.QueryRow(ctx, query, contractID))
}

func (r *chatRepository) ListSessionsByUser(ctx context.Context, userID string) ([]domain.ChatSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM chat_sessions WHERE client_id=$1 OR provider_id=$1 ORDER BY updated_at DESC`, chatSessionColumns)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatSession
	for rows.Next() {
		session, err := scanChatSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *session)
	}
	return result, rows.Err()
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (session_id, sender_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query,
		message.SessionID,
		message.SenderID,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `UPDATE chat_sessions SET updated_at=NOW() WHERE id=$1`, message.SessionID)
	return err
}

func (r *chatRepository) ListMessages(ctx context.Context, sessionID string, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
        SELECT id, session_id, sender_id, body, created_at
        FROM chat_messages WHERE session_id=$1 ORDER BY created_at ASC LIMIT %d OFFSET %d`, limit, offset)
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var message domain.ChatMessage
		if err := rows.Scan(
			&message.ID,
			&message.SessionID,
			&message.SenderID,
			&message.Body,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, message)
	}
	return result, rows.Err()
}

func scanChatSession(row pgx.Row) (*domain.ChatSession, error) {
	var session domain.ChatSession
	if err := row.Scan(
		&session.ID,
		&session.ExternalKey,
		&session.ContractID,
		&session.ClientID,
		&session.ProviderID,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}
