package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// ReviewRepository encapsulates provider reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByContract(ctx context.Context, contractID string) (*domain.Review, error)
	ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]domain.Review, error)
	AverageForProvider(ctx context.Context, providerID string) (float64, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (contract_id, provider_id, client_id, rating, comment)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		review.ContractID,
		review.ProviderID,
		review.ClientID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) GetByContract(ctx context.Context, contractID string) (*domain.Review, error) {
	const query = `
        SELECT id, contract_id, provider_id, client_id, rating, comment, created_at
        FROM reviews WHERE contract_id=$1`
	var review domain.Review
	if err := r.pool.QueryRow(ctx, query, contractID).Scan(
		&review.ID,
		&review.ContractID,
		&review.ProviderID,
		&review.ClientID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, contract_id, provider_id, client_id, rating, comment, created_at
        FROM reviews WHERE provider_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, providerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.ContractID,
			&review.ProviderID,
			&review.ClientID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}

func (r *reviewRepository) AverageForProvider(ctx context.Context, providerID string) (float64, error) {
	const query = `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE provider_id=$1`
	var avg float64
	if err := r.pool.QueryRow(ctx, query, providerID).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}
