// Package services owns the business rules layered over the repositories.
// Every mutation runs its validations and the write inside one transaction,
// so a rejected operation leaves no partial effect.
package services

import (
	"context"

	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/db/repos"
	"gorm.io/gorm"
)

// Project handles project-related operations
type Project struct {
	repo *repos.ProjectRepository
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(db *gorm.DB) *Project {
	return &Project{
		repo: repos.NewProjectRepository(db),
	}
}

// Create creates a new project
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	return s.repo.Create(ctx, project)
}

// Get retrieves a project by ID
func (s *Project) Get(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves all projects with pagination
func (s *Project) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	return s.repo.List(ctx, opts)
}

// Delete deletes a project by ID, cascading to its sprints
func (s *Project) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
