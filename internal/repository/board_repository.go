package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// BoardRepository encapsulates collaboration boards and their comments.
type BoardRepository interface {
	CreateBoard(ctx context.Context, board *domain.Board) error
	GetBoardByID(ctx context.Context, id string) (*domain.Board, error)
	CreateComment(ctx context.Context, comment *domain.BoardComment) error
	GetCommentByID(ctx context.Context, id string) (*domain.BoardComment, error)
	UpdateComment(ctx context.Context, comment *domain.BoardComment) error
	DeleteComment(ctx context.Context, id string) error
	ListComments(ctx context.Context, boardID string) ([]domain.BoardComment, error)
}

type boardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository instantiates repository.
func NewBoardRepository(pool *pgxpool.Pool) BoardRepository {
	return &boardRepository{pool: pool}
}

func (r *boardRepository) CreateBoard(ctx context.Context, board *domain.Board) error {
	const query = `
        INSERT INTO boards (contract_id, title)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, board.ContractID, board.Title).
		Scan(&board.ID, &board.CreatedAt)
}

func (r *boardRepository) GetBoardByID(ctx context.Context, id string) (*domain.Board, error) {
	const query = `SELECT id, contract_id, title, created_at FROM boards WHERE id=$1`
	var board domain.Board
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&board.ID,
		&board.ContractID,
		&board.Title,
		&board.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) CreateComment(ctx context.Context, comment *domain.BoardComment) error {
	const query = `
        INSERT INTO board_comments (board_id, author_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		comment.BoardID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *boardRepository) GetCommentByID(ctx context.Context, id string) (*domain.BoardComment, error) {
	const query = `
        SELECT id, board_id, author_id, body, created_at, updated_at
        FROM board_comments WHERE id=$1`
	var comment domain.BoardComment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.BoardID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *boardRepository) UpdateComment(ctx context.Context, comment *domain.BoardComment) error {
	const query = `UPDATE board_comments SET body=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, comment.Body, comment.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *boardRepository) DeleteComment(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM board_comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *boardRepository) ListComments(ctx context.Context, boardID string) ([]domain.BoardComment, error) {
	const query = `
        SELECT id, board_id, author_id, body, created_at, updated_at
        FROM board_comments WHERE board_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BoardComment
	for rows.Next() {
		var comment domain.BoardComment
		if err := rows.Scan(
			&comment.ID,
			&comment.BoardID,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
