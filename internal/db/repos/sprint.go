package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/db/models"
)

// SprintRepository handles database operations for sprints
type SprintRepository struct {
	db *gorm.DB
}

// NewSprintRepository creates a new instance of SprintRepository
func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{
		db: db,
	}
}

// Create creates a new sprint in the database
func (r *SprintRepository) Create(ctx context.Context, sprint *models.Sprint) error {
	return r.db.WithContext(ctx).Create(sprint).Error
}

// Get retrieves a sprint by ID from the database
func (r *SprintRepository) Get(ctx context.Context, id uint) (*models.Sprint, error) {
	var sprint models.Sprint
	if err := r.db.WithContext(ctx).First(&sprint, id).Error; err != nil {
		return nil, err
	}
	return &sprint, nil
}

// List retrieves all sprints from the database with pagination, ordered by
// end date descending, newest first on ties
func (r *SprintRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Sprint, error) {
	var sprints []models.Sprint
	query := r.db.WithContext(ctx).Order("end_date DESC, id DESC")
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&sprints).Error
	return sprints, err
}

// ListByProject retrieves all sprints for a specific project from the database
func (r *SprintRepository) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Sprint, error) {
	var sprints []models.Sprint
	query := r.db.WithContext(ctx).
		Where(&models.Sprint{ProjectID: projectID}).
		Order("end_date DESC, id DESC")
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&sprints).Error
	return sprints, err
}

// Save persists all fields of an existing sprint
func (r *SprintRepository) Save(ctx context.Context, sprint *models.Sprint) error {
	return r.db.WithContext(ctx).Save(sprint).Error
}

// Delete deletes a sprint from the database
func (r *SprintRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Sprint{}, id).Error
}

// CountOtherActive counts active sprints of the given project other than the
// sprint identified by excludeID. Used by the single-active-sprint rule; must
// run inside the same transaction as the write it validates.
func (r *SprintRepository) CountOtherActive(ctx context.Context, projectID, excludeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Sprint{}).
		Where(models.SprintProjectIDField+" = ? AND "+models.SprintStateField+" = ? AND id <> ?",
			projectID, models.SprintStateActive, excludeID).
		Count(&count).Error
	return count, err
}
