package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// ContractRepository encapsulates contract persistence.
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	Update(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	ListByParty(ctx context.Context, userID string, limit, offset int) ([]domain.Contract, error)
}

type contractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository instantiates repository.
func NewContractRepository(pool *pgxpool.Pool) ContractRepository {
	return &contractRepository{pool: pool}
}

const contractColumns = `id, external_key, project_id, quotation_id, client_id, provider_id, amount, status, created_at, updated_at, completed_at`

func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	const query = `
        INSERT INTO contracts (external_key, project_id, quotation_id, client_id, provider_id, amount, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contract.ExternalKey,
		contract.ProjectID,
		contract.QuotationID,
		contract.ClientID,
		contract.ProviderID,
		contract.Amount,
		contract.Status,
	).Scan(&contract.ID, &contract.CreatedAt, &contract.UpdatedAt)
}

func (r *contractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	const query = `
        UPDATE contracts SET status=$1, completed_at=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, contract.Status, contract.CompletedAt, contract.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE id=$1`, contractColumns)
	return scanContract(r.pool.QueryRow(ctx, query, id))
}

func (r *contractRepository) ListByParty(ctx context.Context, userID string, limit, offset int) ([]domain.Contract, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE client_id=$1 OR provider_id=$1 ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		contractColumns, limit, offset)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *contract)
	}
	return result, rows.Err()
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var contract domain.Contract
	var amount pgtype.Numeric
	if err := row.Scan(
		&contract.ID,
		&contract.ExternalKey,
		&contract.ProjectID,
		&contract.QuotationID,
		&contract.ClientID,
		&contract.ProviderID,
		&amount,
		&contract.Status,
		&contract.CreatedAt,
		&contract.UpdatedAt,
		&contract.CompletedAt,
	); err != nil {
		return nil, err
	}
	value, err := floatFromNumeric(amount)
	if err != nil {
		return nil, err
	}
	contract.Amount = value
	return &contract, nil
}
