package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/db/repos"
	"github.com/pmflow/flow/internal/validation"
)

// Task handles task-related operations, including the sprint binding side of
// a task: assignment, unassignment and the cross-entity validations that come
// with them.
type Task struct {
	db *gorm.DB
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(db *gorm.DB) *Task {
	return &Task{
		db: db,
	}
}

// TaskUpdateParams carries a partial update of a task. Nil fields are left
// untouched. Sprint assignment changes go through AssignSprint and
// UnassignSprint instead.
type TaskUpdateParams struct {
	Name      *string            `json:"name,omitempty"`
	Status    *models.TaskStatus `json:"status,omitempty"`
	ProjectID *uint              `json:"project_id,omitempty"`
	Deadline  *time.Time         `json:"deadline,omitempty"`
}

// Create validates and persists a new task. A task created directly into a
// sprint gets the sprint's end date suggested as its deadline when none is
// given.
func (s *Task) Create(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if task.SprintID != nil {
			sprint, err := repos.NewSprintRepository(tx).Get(ctx, *task.SprintID)
			if err != nil {
				return err
			}
			suggestDeadline(task, sprint)
			if err := validation.CheckTaskSprint(task, sprint); err != nil {
				return err
			}
		}
		return repos.NewTaskRepository(tx).Create(ctx, task)
	})
}

// Get retrieves a task by ID
func (s *Task) Get(ctx context.Context, id uint) (*models.Task, error) {
	return repos.NewTaskRepository(s.db).Get(ctx, id)
}

// ListByProject retrieves all tasks for a project with pagination
func (s *Task) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	return repos.NewTaskRepository(s.db).ListByProject(ctx, projectID, opts)
}

// Update applies a partial update to a task. When the task is linked to a
// sprint, the cross-entity rules are re-validated against the changed fields.
func (s *Task) Update(ctx context.Context, id uint, params TaskUpdateParams) (*models.Task, error) {
	var updated *models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repos.NewTaskRepository(tx)

		task, err := tasks.Get(ctx, id)
		if err != nil {
			return err
		}

		if params.Name != nil {
			task.Name = *params.Name
		}
		if params.Status != nil {
			task.Status = *params.Status
		}
		if params.ProjectID != nil {
			task.ProjectID = *params.ProjectID
		}
		if params.Deadline != nil {
			task.Deadline = params.Deadline
		}

		if err := task.Validate(); err != nil {
			return err
		}
		if task.SprintID != nil {
			sprint, err := repos.NewSprintRepository(tx).Get(ctx, *task.SprintID)
			if err != nil {
				return err
			}
			if err := validation.CheckTaskSprint(task, sprint); err != nil {
				return err
			}
		}

		if err := tasks.Save(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	return updated, err
}

// AssignSprint links a task to a sprint. A task without a deadline gets the
// sprint's end date suggested before validation.
func (s *Task) AssignSprint(ctx context.Context, taskID, sprintID uint) (*models.Task, error) {
	var updated *models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repos.NewTaskRepository(tx)

		task, err := tasks.Get(ctx, taskID)
		if err != nil {
			return err
		}
		sprint, err := repos.NewSprintRepository(tx).Get(ctx, sprintID)
		if err != nil {
			return err
		}

		suggestDeadline(task, sprint)
		if err := validation.CheckTaskSprint(task, sprint); err != nil {
			return err
		}

		task.SprintID = &sprint.ID
		if err := tasks.Save(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	return updated, err
}

// UnassignSprint clears the task's sprint reference
func (s *Task) UnassignSprint(ctx context.Context, taskID uint) (*models.Task, error) {
	var updated *models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repos.NewTaskRepository(tx)

		task, err := tasks.Get(ctx, taskID)
		if err != nil {
			return err
		}
		if task.SprintID == nil {
			updated = task
			return nil
		}
		if err := tasks.SetSprint(ctx, []uint{task.ID}, nil); err != nil {
			return err
		}
		task.SprintID = nil
		updated = task
		return nil
	})
	return updated, err
}

// Delete deletes a task by ID
func (s *Task) Delete(ctx context.Context, id uint) error {
	tasks := repos.NewTaskRepository(s.db)
	if _, err := tasks.Get(ctx, id); err != nil {
		return err
	}
	return tasks.Delete(ctx, id)
}

// suggestDeadline applies the advisory default: a task entering a sprint with
// no deadline of its own inherits the sprint's end date. Edit-time only,
// never enforced afterwards.
func suggestDeadline(task *models.Task, sprint *models.Sprint) {
	if task.Deadline == nil && !sprint.EndDate.IsZero() {
		deadline := models.DateOf(sprint.EndDate)
		task.Deadline = &deadline
	}
}
