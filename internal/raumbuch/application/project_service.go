package application

import (
	"context"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// ProjectService implements project CRUD.
type ProjectService struct {
	repo domain.ProjectRepository
}

// NewProjectService constructs a service.
func NewProjectService(repo domain.ProjectRepository) (*ProjectService, error) {
	if repo == nil {
		return nil, errors.New("project service: nil repo")
	}
	return &ProjectService{repo: repo}, nil
}

// CreateProjectInput carries the fields of a new project.
type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectInput carries a partial update; nil fields keep prior values.
type UpdateProjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProjectSummary is a project with child counts for list views.
type ProjectSummary struct {
	domain.Project
	Counts domain.ProjectCounts
}

// Create validates and persists a new project.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		ID:          newID(),
		Name:        input.Name,
		Description: input.Description,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get loads a project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.Get(ctx, id)
}

// List returns all projects with child counts, newest first.
func (s *ProjectService) List(ctx context.Context) ([]ProjectSummary, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]ProjectSummary, 0, len(projects))
	for _, project := range projects {
		counts, err := s.repo.Counts(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ProjectSummary{Project: project, Counts: counts})
	}
	return summaries, nil
}

// Update applies a partial update with full-field write semantics.
func (s *ProjectService) Update(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and its whole tree.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
