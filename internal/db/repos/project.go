// Package repos provides database repository implementations
package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID from the database
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByName retrieves a project by name from the database
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where(models.Project{Name: name}).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects from the database with pagination
func (r *ProjectRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.WithContext(ctx)
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// Delete deletes a project and cascades to its sprints. Sprint deletion
// clears the sprint reference of linked tasks first, then removes the
// sprints, then the project itself. Runs in one transaction so the cascade
// is all-or-nothing even when the database has no FK support.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sprintIDs []uint
		if err := tx.Model(&models.Sprint{}).
			Where(&models.Sprint{ProjectID: id}).
			Pluck("id", &sprintIDs).Error; err != nil {
			return err
		}
		if len(sprintIDs) > 0 {
			if err := tx.Model(&models.Task{}).
				Where(models.TaskSprintIDField+" IN ?", sprintIDs).
				Update(models.TaskSprintIDField, nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Sprint{}, sprintIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
