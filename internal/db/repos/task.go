package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Get retrieves a task by ID from the database
func (r *TaskRepository) Get(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetBatch retrieves the tasks with the given IDs from the database
func (r *TaskRepository) GetBatch(ctx context.Context, ids []uint) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.db.WithContext(ctx).Find(&tasks, ids).Error
	return tasks, err
}

// ListByProject retrieves all tasks for a specific project from the database with pagination
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.WithContext(ctx).Where(&models.Task{ProjectID: projectID})
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&tasks).Error
	return tasks, err
}

// ListBySprint retrieves all tasks currently linked to a sprint
func (r *TaskRepository) ListBySprint(ctx context.Context, sprintID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where(models.TaskSprintIDField+" = ?", sprintID).
		Find(&tasks).Error
	return tasks, err
}

// CountBySprint counts the tasks currently linked to a sprint
func (r *TaskRepository) CountBySprint(ctx context.Context, sprintID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where(models.TaskSprintIDField+" = ?", sprintID).
		Count(&count).Error
	return count, err
}

// Save persists all fields of an existing task
func (r *TaskRepository) Save(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// SetSprint points the given tasks at the sprint identified by sprintID;
// a nil sprintID clears the reference
func (r *TaskRepository) SetSprint(ctx context.Context, taskIDs []uint, sprintID *uint) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id IN ?", taskIDs).
		Update(models.TaskSprintIDField, sprintID).Error
}

// ClearSprint clears the sprint reference of every task linked to the sprint
func (r *TaskRepository) ClearSprint(ctx context.Context, sprintID uint) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where(models.TaskSprintIDField+" = ?", sprintID).
		Update(models.TaskSprintIDField, nil).Error
}

// Delete deletes a task from the database
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}
