package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// BoardService coordinates collaboration boards. Board access follows the
// contract parties; comments can only be changed by their author.
type BoardService struct {
	boards    repository.BoardRepository
	contracts repository.ContractRepository
}

// NewBoardService constructs the service.
func NewBoardService(boards repository.BoardRepository, contracts repository.ContractRepository) *BoardService {
	return &BoardService{boards: boards, contracts: contracts}
}

// Get returns a board and its comments for a contract party.
func (s *BoardService) Get(ctx context.Context, callerID, boardID string) (*domain.Board, []domain.BoardComment, error) {
	board, err := s.fetchBoard(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireParty(ctx, callerID, board.ContractID); err != nil {
		return nil, nil, err
	}
	comments, err := s.boards.ListComments(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}
	return board, comments, nil
}

// AddComment appends a comment for a contract party.
func (s *BoardService) AddComment(ctx context.Context, callerID, boardID, body string) (*domain.BoardComment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}

	board, err := s.fetchBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParty(ctx, callerID, board.ContractID); err != nil {
		return nil, err
	}

	comment := &domain.BoardComment{
		BoardID:  board.ID,
		AuthorID: callerID,
		Body:     strings.TrimSpace(body),
	}
	if err := s.boards.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment edits a comment; author only.
func (s *BoardService) UpdateComment(ctx context.Context, callerID, commentID, body string) (*domain.BoardComment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}

	comment, err := s.fetchComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, apperrors.NewForbidden("not your comment")
	}

	comment.Body = strings.TrimSpace(body)
	if err := s.boards.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment; author only.
func (s *BoardService) DeleteComment(ctx context.Context, callerID, commentID string) error {
	comment, err := s.fetchComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return apperrors.NewForbidden("not your comment")
	}
	return s.boards.DeleteComment(ctx, commentID)
}

func (s *BoardService) fetchBoard(ctx context.Context, boardID string) (*domain.Board, error) {
	board, err := s.boards.GetBoardByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("board", nil)
		}
		return nil, err
	}
	return board, nil
}

func (s *BoardService) fetchComment(ctx context.Context, commentID string) (*domain.BoardComment, error) {
	comment, err := s.boards.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", nil)
		}
		return nil, err
	}
	return comment, nil
}

func (s *BoardService) requireParty(ctx context.Context, callerID, contractID string) error {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("contract", nil)
		}
		return err
	}
	if !contract.Party(callerID) {
		return apperrors.NewForbidden("not a contract party")
	}
	return nil
}
