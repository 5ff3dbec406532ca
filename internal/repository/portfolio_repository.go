package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// PortfolioRepository encapsulates provider portfolio items.
type PortfolioRepository interface {
	Create(ctx context.Context, item *domain.PortfolioItem) error
	GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.PortfolioItem, error)
	Delete(ctx context.Context, id string) error
}

type portfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository instantiates repository.
func NewPortfolioRepository(pool *pgxpool.Pool) PortfolioRepository {
	return &portfolioRepository{pool: pool}
}

func (r *portfolioRepository) Create(ctx context.Context, item *domain.PortfolioItem) error {
	const query = `
        INSERT INTO portfolio_items (provider_id, title, description, link)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		item.ProviderID,
		item.Title,
		item.Description,
		item.Link,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *portfolioRepository) GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	const query = `
        SELECT id, provider_id, title, description, link, created_at
        FROM portfolio_items WHERE id=$1`
	var item domain.PortfolioItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.ProviderID,
		&item.Title,
		&item.Description,
		&item.Link,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *portfolioRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.PortfolioItem, error) {
	const query = `
        SELECT id, provider_id, title, description, link, created_at
        FROM portfolio_items WHERE provider_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PortfolioItem
	for rows.Next() {
		var item domain.PortfolioItem
		if err := rows.Scan(
			&item.ID,
			&item.ProviderID,
			&item.Title,
			&item.Description,
			&item.Link,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *portfolioRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM portfolio_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
