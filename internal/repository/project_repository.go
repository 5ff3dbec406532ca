package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// ProjectFilter captures listing parameters for a client's own projects.
type ProjectFilter struct {
	ClientID *string
	Statuses []domain.ProjectStatus
	Limit    int
	Offset   int
}

// ProjectRepository encapsulates project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListWithFilter(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	ListPublished(ctx context.Context, limit, offset int) ([]domain.Project, error)
	CountByClient(ctx context.Context, clientID string, statuses ...domain.ProjectStatus) (int64, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, client_id, title, description, budget, status, skills, created_at, updated_at, closed_at`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (client_id, title, description, budget, status, skills)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.ClientID,
		project.Title,
		project.Description,
		project.Budget,
		project.Status,
		project.Skills,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET title=$1, description=$2, budget=$3, status=$4, skills=$5,
            closed_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		project.Title,
		project.Description,
		project.Budget,
		project.Status,
		project.Skills,
		project.ClosedAt,
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id=$1`, projectColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanProject(row)
}

func (r *projectRepository) ListWithFilter(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		projectColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *projectRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE status=$1 ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		projectColumns, limit, offset)
	rows, err := r.pool.Query(ctx, query, domain.ProjectStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *projectRepository) CountByClient(ctx context.Context, clientID string, statuses ...domain.ProjectStatus) (int64, error) {
	clauses := []string{"client_id=$1"}
	args := []any{clientID}
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM projects WHERE %s`, strings.Join(clauses, " AND "))

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	var budget pgtype.Numeric
	if err := row.Scan(
		&project.ID,
		&project.ClientID,
		&project.Title,
		&project.Description,
		&budget,
		&project.Status,
		&project.Skills,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.ClosedAt,
	); err != nil {
		return nil, err
	}
	value, err := floatFromNumeric(budget)
	if err != nil {
		return nil, err
	}
	project.Budget = value
	return &project, nil
}

func scanProjects(rows pgx.Rows) ([]domain.Project, error) {
	var result []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *project)
	}
	return result, rows.Err()
}
