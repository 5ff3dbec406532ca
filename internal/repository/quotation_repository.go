package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// QuotationRepository encapsulates quotation persistence.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *domain.Quotation) error
	UpdateStatus(ctx context.Context, id string, status domain.QuotationStatus) error
	GetByID(ctx context.Context, id string) (*domain.Quotation, error)
	GetPendingByProjectAndProvider(ctx context.Context, projectID, providerID string) (*domain.Quotation, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Quotation, error)
	ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]domain.Quotation, error)
	RejectSiblings(ctx context.Context, projectID, acceptedID string) error
	CountByProvider(ctx context.Context, providerID string, statuses ...domain.QuotationStatus) (int64, error)
	CountPendingForClientProjects(ctx context.Context, clientID string) (int64, error)
}

type quotationRepository struct {
	pool *pgxpool.Pool
}

// NewQuotationRepository instantiates repository.
func NewQuotationRepository(pool *pgxpool.Pool) QuotationRepository {
	return &quotationRepository{pool: pool}
}

const quotationColumns = `id, project_id, provider_id, amount, delivery_days, message, status, created_at, updated_at`

func (r *quotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	const query = `
        INSERT INTO quotations (project_id, provider_id, amount, delivery_days, message, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		quotation.ProjectID,
		quotation.ProviderID,
		quotation.Amount,
		quotation.DeliveryDays,
		quotation.Message,
		quotation.Status,
	).Scan(&quotation.ID, &quotation.CreatedAt, &quotation.UpdatedAt)
}

func (r *quotationRepository) UpdateStatus(ctx context.Context, id string, status domain.QuotationStatus) error {
	const query = `UPDATE quotations SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *quotationRepository) GetByID(ctx context.Context, id string) (*domain.Quotation, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE id=$1`, quotationColumns)
	return scanQuotation(r.pool.QueryRow(ctx, query, id))
}

func (r *quotationRepository) GetPendingByProjectAndProvider(ctx context.Context, projectID, providerID string) (*domain.Quotation, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE project_id=$1 AND provider_id=$2 AND status=$3`, quotationColumns)
	return scanQuotation(r.pool.QueryRow(ctx, query, projectID, providerID, domain.QuotationStatusPending))
}

func (r *quotationRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Quotation, error) {
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE project_id=$1 ORDER BY created_at DESC`, quotationColumns)
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotations(rows)
}

func (r *quotationRepository) ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]domain.Quotation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM quotations WHERE provider_id=$1 ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		quotationColumns, limit, offset)
	rows, err := r.pool.Query(ctx, query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuotations(rows)
}

// RejectSiblings marks every other pending quotation on the project rejected.
func (r *quotationRepository) RejectSiblings(ctx context.Context, projectID, acceptedID string) error {
	const query = `
        UPDATE quotations SET status=$1, updated_at=NOW()
        WHERE project_id=$2 AND id<>$3 AND status=$4`
	_, err := r.pool.Exec(ctx, query,
		domain.QuotationStatusRejected, projectID, acceptedID, domain.QuotationStatusPending)
	return err
}

func (r *quotationRepository) CountByProvider(ctx context.Context, providerID string, statuses ...domain.QuotationStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM quotations WHERE provider_id=$1`
	args := []any{providerID}
	if len(statuses) > 0 {
		query += ` AND status=ANY($2)`
		list := make([]string, len(statuses))
		for i, status := range statuses {
			list[i] = string(status)
		}
		args = append(args, list)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingForClientProjects counts quotations awaiting the client's decision.
func (r *quotationRepository) CountPendingForClientProjects(ctx context.Context, clientID string) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM quotations q
        JOIN projects p ON p.id = q.project_id
        WHERE p.client_id=$1 AND q.status=$2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, clientID, domain.QuotationStatusPending).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanQuotation(row pgx.Row) (*domain.Quotation, error) {
	var quotation domain.Quotation
	var amount pgtype.Numeric
	if err := row.Scan(
		&quotation.ID,
		&quotation.ProjectID,
		&quotation.ProviderID,
		&amount,
		&quotation.DeliveryDays,
		&quotation.Message,
		&quotation.Status,
		&quotation.CreatedAt,
		&quotation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	value, err := floatFromNumeric(amount)
	if err != nil {
		return nil, err
	}
	quotation.Amount = value
	return &quotation, nil
}

func scanQuotations(rows pgx.Rows) ([]domain.Quotation, error) {
	var result []domain.Quotation
	for rows.Next() {
		quotation, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *quotation)
	}
	return result, rows.Err()
}
