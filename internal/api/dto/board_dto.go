package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// BoardCommentRequest payload for creating or editing a comment.
type BoardCommentRequest struct {
	Body string `json:"body"`
}

// BoardCommentResponse is the wire shape of a comment.
type BoardCommentResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBoardCommentResponse maps a domain comment.
func NewBoardCommentResponse(comment *domain.BoardComment) BoardCommentResponse {
	return BoardCommentResponse{
		ID:        comment.ID,
		BoardID:   comment.BoardID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// BoardResponse is the wire shape of a board with its comments.
type BoardResponse struct {
	ID         string                 `json:"id"`
	ContractID string                 `json:"contractId"`
	Title      string                 `json:"title"`
	Comments   []BoardCommentResponse `json:"comments"`
}

// NewBoardResponse maps a board and its comments.
func NewBoardResponse(board *domain.Board, comments []domain.BoardComment) BoardResponse {
	mapped := make([]BoardCommentResponse, 0, len(comments))
	for i := range comments {
		mapped = append(mapped, NewBoardCommentResponse(&comments[i]))
	}
	return BoardResponse{
		ID:         board.ID,
		ContractID: board.ContractID,
		Title:      board.Title,
		Comments:   mapped,
	}
}
