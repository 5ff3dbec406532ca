package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

type boardFixture struct {
	service   *BoardService
	boards    *fakeBoardRepo
	contracts *fakeContractRepo
}

func newBoardFixture(t *testing.T) (*boardFixture, *domain.Board) {
	t.Helper()
	ctx := context.Background()
	f := &boardFixture{
		boards:    newFakeBoardRepo(),
		contracts: newFakeContractRepo(),
	}
	f.service = NewBoardService(f.boards, f.contracts)

	contract := &domain.Contract{
		ExternalKey: "ck-1",
		ProjectID:   "project-1",
		QuotationID: "quotation-1",
		ClientID:    "client-1",
		ProviderID:  "provider-1",
		Amount:      10000,
		Status:      domain.ContractStatusActive,
	}
	require.NoError(t, f.contracts.Create(ctx, contract))

	board := &domain.Board{ContractID: contract.ID, Title: "SAP rollout"}
	require.NoError(t, f.boards.CreateBoard(ctx, board))
	return f, board
}

func TestBoardGet(t *testing.T) {
	ctx := context.Background()
	f, board := newBoardFixture(t)

	got, comments, err := f.service.Get(ctx, "provider-1", board.ID)
	require.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)
	assert.Empty(t, comments)

	_, _, err = f.service.Get(ctx, "client-2", board.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	_, _, err = f.service.Get(ctx, "client-2", "missing")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestBoardComments(t *testing.T) {
	ctx := context.Background()
	f, board := newBoardFixture(t)

	comment, err := f.service.AddComment(ctx, "client-1", board.ID, " kickoff notes ")
	require.NoError(t, err)
	assert.Equal(t, "kickoff notes", comment.Body)

	// Only the author may edit or delete.
	_, err = f.service.UpdateComment(ctx, "provider-1", comment.ID, "edited")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	updated, err := f.service.UpdateComment(ctx, "client-1", comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)

	err = f.service.DeleteComment(ctx, "provider-1", comment.ID)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	require.NoError(t, f.service.DeleteComment(ctx, "client-1", comment.ID))

	_, err = f.service.UpdateComment(ctx, "client-1", comment.ID, "gone")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestBoardAddCommentRequiresParty(t *testing.T) {
	ctx := context.Background()
	f, board := newBoardFixture(t)

	_, err := f.service.AddComment(ctx, "client-2", board.ID, "hello")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
