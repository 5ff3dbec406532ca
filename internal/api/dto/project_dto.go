package dto

import (
	"time"

	"github.com/spec-kit/consulting-marketplace/internal/domain"
)

// CreateProjectRequest payload for new projects.
type CreateProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      float64  `json:"budget"`
	Skills      []string `json:"skills"`
}

// UpdateProjectRequest payload for editing drafts.
type UpdateProjectRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
	Skills      []string `json:"skills"`
}

// ProjectResponse is the wire shape of a project.
type ProjectResponse struct {
	ID          string               `json:"id"`
	ClientID    string               `json:"clientId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Budget      float64              `json:"budget"`
	Status      domain.ProjectStatus `json:"status"`
	Skills      []string             `json:"skills"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		ClientID:    project.ClientID,
		Title:       project.Title,
		Description: project.Description,
		Budget:      project.Budget,
		Status:      project.Status,
		Skills:      project.Skills,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// NewProjectResponses maps a slice of projects.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	result := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, NewProjectResponse(&projects[i]))
	}
	return result
}
