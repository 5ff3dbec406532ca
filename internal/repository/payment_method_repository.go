package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// PaymentMethodRepository encapsulates stored charge instruments.
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *domain.PaymentMethod) error
	GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	SetDefault(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, id string) error
	PromoteMostRecent(ctx context.Context, userID string) error
}

type paymentMethodRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentMethodRepository instantiates repository.
func NewPaymentMethodRepository(pool *pgxpool.Pool) PaymentMethodRepository {
	return &paymentMethodRepository{pool: pool}
}

const paymentMethodColumns = `id, user_id, label, brand, last4, is_default, created_at, updated_at`

func (r *paymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	const query = `
        INSERT INTO payment_methods (user_id, label, brand, last4, is_default)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		method.UserID,
		method.Label,
		method.Brand,
		method.Last4,
		method.IsDefault,
	).Scan(&method.ID, &method.CreatedAt, &method.UpdatedAt)
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	const query = `
        SELECT id, user_id, label, brand, last4, is_default, created_at, updated_at
        FROM payment_methods WHERE id=$1`
	var method domain.PaymentMethod
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&method.ID,
		&method.UserID,
		&method.Label,
		&method.Brand,
		&method.Last4,
		&method.IsDefault,
		&method.CreatedAt,
		&method.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) ListByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	const query = `
        SELECT id, user_id, label, brand, last4, is_default, created_at, updated_at
        FROM payment_methods WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentMethod
	for rows.Next() {
		var method domain.PaymentMethod
		if err := rows.Scan(
			&method.ID,
			&method.UserID,
			&method.Label,
			&method.Brand,
			&method.Last4,
			&method.IsDefault,
			&method.CreatedAt,
			&method.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, method)
	}
	return result, rows.Err()
}

func (r *paymentMethodRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment_methods WHERE user_id=$1`, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetDefault flips the default flag to the given method within one transaction.
func (r *paymentMethodRepository) SetDefault(ctx context.Context, userID, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE payment_methods SET is_default=FALSE, updated_at=NOW() WHERE user_id=$1`, userID); err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `UPDATE payment_methods SET is_default=TRUE, updated_at=NOW() WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PromoteMostRecent makes the newest remaining method the default when the
// previous default was removed.
func (r *paymentMethodRepository) PromoteMostRecent(ctx context.Context, userID string) error {
	const query = `
        UPDATE payment_methods SET is_default=TRUE, updated_at=NOW()
        WHERE id = (
            SELECT id FROM payment_methods WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1
        )`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}
