package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// PaymentRepository encapsulates the payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByContract(ctx context.Context, contractID string) ([]domain.Payment, error)
	SumSucceededByPayer(ctx context.Context, payerID string) (float64, error)
	SumSucceededByPayee(ctx context.Context, payeeID string) (float64, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const paymentColumns = `id, contract_id, payer_id, payee_id, amount, status, processor_ref, created_at`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (contract_id, payer_id, payee_id, amount, status, processor_ref)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		payment.ContractID,
		payment.PayerID,
		payment.PayeeID,
		payment.Amount,
		payment.Status,
		payment.ProcessorRef,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *paymentRepository) ListByContract(ctx context.Context, contractID string) ([]domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE contract_id=$1 ORDER BY created_at DESC`, paymentColumns)
	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepository) SumSucceededByPayer(ctx context.Context, payerID string) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payer_id=$1 AND status=$2`
	return r.sum(ctx, query, payerID)
}

func (r *paymentRepository) SumSucceededByPayee(ctx context.Context, payeeID string) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payee_id=$1 AND status=$2`
	return r.sum(ctx, query, payeeID)
}

func (r *paymentRepository) sum(ctx context.Context, query, userID string) (float64, error) {
	var total pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, userID, domain.PaymentStatusSucceeded).Scan(&total); err != nil {
		return 0, err
	}
	return floatFromNumeric(total)
}

func scanPayments(rows pgx.Rows) ([]domain.Payment, error) {
	var result []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		var amount pgtype.Numeric
		if err := rows.Scan(
			&payment.ID,
			&payment.ContractID,
			&payment.PayerID,
			&payment.PayeeID,
			&amount,
			&payment.Status,
			&payment.ProcessorRef,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		value, err := floatFromNumeric(amount)
		if err != nil {
			return nil, err
		}
		payment.Amount = value
		result = append(result, payment)
	}
	return result, rows.Err()
}
