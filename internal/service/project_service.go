package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	apperrors "github.com/spec-kit/consulting-marketplace/pkg/util"
)

// ProjectService coordinates the project lifecycle.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, dispatcher: dispatcher}
}

// ProjectCreateInput describes project creation payload.
type ProjectCreateInput struct {
	Title       string
	Description string
	Budget      float64
	Skills      []string
}

// ProjectUpdateInput describes editable draft fields.
type ProjectUpdateInput struct {
	Title       *string
	Description *string
	Budget      *float64
	Skills      []string
}

// Create registers a new draft project owned by the client.
func (s *ProjectService) Create(ctx context.Context, clientID string, input ProjectCreateInput) (*domain.Project, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if input.Budget < 0 {
		return nil, apperrors.NewValidationError("budget must not be negative", nil)
	}

	project := &domain.Project{
		ClientID:    clientID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Budget:      input.Budget,
		Status:      domain.ProjectStatusDraft,
		Skills:      input.Skills,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get fetches a project for its owner or an admin. Existence is checked
// before ownership so a missing project is reported as not found.
func (s *ProjectService) Get(ctx context.Context, caller *domain.User, projectID string) (*domain.Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("not your project")
	}
	return project, nil
}

// ListOwn returns the client's projects.
func (s *ProjectService) ListOwn(ctx context.Context, clientID string, statuses []domain.ProjectStatus, limit, offset int) ([]domain.Project, error) {
	filter := repository.ProjectFilter{
		ClientID: &clientID,
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	}
	return s.projects.ListWithFilter(ctx, filter)
}

// ListPublic returns published projects; no session required.
func (s *ProjectService) ListPublic(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	return s.projects.ListPublished(ctx, limit, offset)
}

// Update edits draft fields. Only drafts may be edited.
func (s *ProjectService) Update(ctx context.Context, clientID, projectID string, input ProjectUpdateInput) (*domain.Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, apperrors.NewForbidden("not your project")
	}
	if project.Status != domain.ProjectStatusDraft {
		return nil, apperrors.NewValidationError("only draft projects can be edited", nil)
	}

	if input.Title != nil {
		project.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.Budget != nil {
		if *input.Budget < 0 {
			return nil, apperrors.NewValidationError("budget must not be negative", nil)
		}
		project.Budget = *input.Budget
	}
	if input.Skills != nil {
		project.Skills = input.Skills
	}
	if project.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Publish moves a draft to the public listing.
func (s *ProjectService) Publish(ctx context.Context, clientID, projectID string) (*domain.Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, apperrors.NewForbidden("not your project")
	}
	if project.Status != domain.ProjectStatusDraft {
		return nil, apperrors.NewValidationError("only draft projects can be published", nil)
	}

	project.Status = domain.ProjectStatusPublished
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    events.EventProjectPublished,
		ActorID: clientID,
		Payload: events.ProjectPublishedPayload{
			ProjectID: project.ID,
			Title:     project.Title,
			Budget:    project.Budget,
		},
	})
	return project, nil
}

// Cancel closes a project that has not completed.
func (s *ProjectService) Cancel(ctx context.Context, clientID, projectID string) (*domain.Project, error) {
	project, err := s.fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, apperrors.NewForbidden("not your project")
	}
	if project.Status == domain.ProjectStatusCompleted || project.Status == domain.ProjectStatusCancelled {
		return nil, apperrors.NewValidationError("project already closed", nil)
	}

	now := time.Now()
	project.Status = domain.ProjectStatusCancelled
	project.ClosedAt = &now
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) fetch(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	return project, nil
}
