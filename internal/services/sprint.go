package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/db/repos"
	"github.com/pmflow/flow/internal/validation"
)

// Sprint handles sprint lifecycle operations: creation, field updates, the
// manual state overrides and the task selection helper. All writes recompute
// the derived state first and then run the full validator set, regardless of
// which entry point requested them.
type Sprint struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSprintService creates a new instance of SprintService
func NewSprintService(db *gorm.DB) *Sprint {
	return &Sprint{
		db:  db,
		now: time.Now,
	}
}

// WithClock overrides the time source. Tests use this for deterministic dates.
func (s *Sprint) WithClock(now func() time.Time) *Sprint {
	s.now = now
	return s
}

// SprintUpdateParams carries a partial update of a sprint. Nil fields are
// left untouched. A non-nil ProjectID triggers the project immutability
// guard even when the value equals the current one.
type SprintUpdateParams struct {
	Name        *string                 `json:"name,omitempty"`
	ProjectID   *uint                   `json:"project_id,omitempty"`
	StartDate   *time.Time              `json:"start_date,omitempty"`
	EndDate     *time.Time              `json:"end_date,omitempty"`
	StateMode   *models.SprintStateMode `json:"state_mode,omitempty"`
	StateManual *models.SprintState     `json:"state_manual,omitempty"`
}

// Create validates and persists a new sprint. A missing end date defaults to
// two weeks after the start date before validation runs.
func (s *Sprint) Create(ctx context.Context, sprint *models.Sprint) error {
	if sprint.EndDate.IsZero() && !sprint.StartDate.IsZero() {
		sprint.EndDate = sprint.StartDate.AddDate(0, 0, models.DefaultSprintDurationDays)
	}
	if sprint.StateMode == "" {
		sprint.StateMode = models.SprintStateModeAuto
	}
	if sprint.StateManual == "" {
		sprint.StateManual = models.SprintStatePlanned
	}
	sprint.RecomputeState(s.now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validation.CheckSprintDates(sprint); err != nil {
			return err
		}
		if err := validation.CheckSprintManualState(sprint, s.now()); err != nil {
			return err
		}
		sprints := repos.NewSprintRepository(tx)
		otherActive, err := sprints.CountOtherActive(ctx, sprint.ProjectID, 0)
		if err != nil {
			return err
		}
		if err := validation.CheckSingleActiveSprint(sprint, otherActive); err != nil {
			return err
		}
		return sprints.Create(ctx, sprint)
	})
}

// Get retrieves a sprint by ID
func (s *Sprint) Get(ctx context.Context, id uint) (*models.Sprint, error) {
	return repos.NewSprintRepository(s.db).Get(ctx, id)
}

// List retrieves sprints, optionally restricted to one project
func (s *Sprint) List(ctx context.Context, projectID *uint, opts *models.ListOptions) ([]models.Sprint, error) {
	sprints := repos.NewSprintRepository(s.db)
	if projectID != nil {
		return sprints.ListByProject(ctx, *projectID, opts)
	}
	return sprints.List(ctx, opts)
}

// Update applies a partial update to a sprint. The derived state is
// recomputed before the validators run, so the single-active rule sees the
// post-recompute state. The whole operation is one transaction.
func (s *Sprint) Update(ctx context.Context, id uint, params SprintUpdateParams) (*models.Sprint, error) {
	var updated *models.Sprint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sprints := repos.NewSprintRepository(tx)
		tasks := repos.NewTaskRepository(tx)

		sprint, err := sprints.Get(ctx, id)
		if err != nil {
			return err
		}

		if params.ProjectID != nil {
			taskCount, err := tasks.CountBySprint(ctx, sprint.ID)
			if err != nil {
				return err
			}
			if err := validation.CheckSprintProjectChange(sprint, taskCount); err != nil {
				return err
			}
			sprint.ProjectID = *params.ProjectID
		}
		if params.Name != nil {
			sprint.Name = *params.Name
		}
		if params.StartDate != nil {
			sprint.StartDate = *params.StartDate
		}
		if params.EndDate != nil {
			sprint.EndDate = *params.EndDate
		}
		if params.StateMode != nil {
			sprint.StateMode = *params.StateMode
		}
		if params.StateManual != nil {
			sprint.StateManual = *params.StateManual
		}

		sprint.RecomputeState(s.now())

		if err := sprint.Validate(); err != nil {
			return err
		}
		if err := validation.CheckSprintDates(sprint); err != nil {
			return err
		}
		if err := validation.CheckSprintManualState(sprint, s.now()); err != nil {
			return err
		}
		linked, err := tasks.ListBySprint(ctx, sprint.ID)
		if err != nil {
			return err
		}
		if err := validation.CheckSprintTasksProject(sprint, linked); err != nil {
			return err
		}
		otherActive, err := sprints.CountOtherActive(ctx, sprint.ProjectID, sprint.ID)
		if err != nil {
			return err
		}
		if err := validation.CheckSingleActiveSprint(sprint, otherActive); err != nil {
			return err
		}

		if err := sprints.Save(ctx, sprint); err != nil {
			return err
		}
		updated = sprint
		return nil
	})
	return updated, err
}

// SetAuto switches the sprint back to automatic state derivation
func (s *Sprint) SetAuto(ctx context.Context, id uint) (*models.Sprint, error) {
	mode := models.SprintStateModeAuto
	return s.Update(ctx, id, SprintUpdateParams{StateMode: &mode})
}

// SetPlanned holds the sprint in the planned state
func (s *Sprint) SetPlanned(ctx context.Context, id uint) (*models.Sprint, error) {
	return s.setManual(ctx, id, models.SprintStatePlanned)
}

// SetActive holds the sprint in the active state
func (s *Sprint) SetActive(ctx context.Context, id uint) (*models.Sprint, error) {
	return s.setManual(ctx, id, models.SprintStateActive)
}

// SetDone holds the sprint in the done state
func (s *Sprint) SetDone(ctx context.Context, id uint) (*models.Sprint, error) {
	return s.setManual(ctx, id, models.SprintStateDone)
}

// setManual routes a manual override through the regular update path, so the
// full validator set runs with no bypass
func (s *Sprint) setManual(ctx context.Context, id uint, target models.SprintState) (*models.Sprint, error) {
	mode := models.SprintStateModeManual
	return s.Update(ctx, id, SprintUpdateParams{StateMode: &mode, StateManual: &target})
}

// Tasks returns the tasks currently linked to the sprint
func (s *Sprint) Tasks(ctx context.Context, sprintID uint) ([]models.Task, error) {
	if _, err := repos.NewSprintRepository(s.db).Get(ctx, sprintID); err != nil {
		return nil, err
	}
	return repos.NewTaskRepository(s.db).ListBySprint(ctx, sprintID)
}

// SelectTasks replaces the sprint's task selection. It computes the tasks to
// add and to remove against the current set, validates the additions and
// applies both sides, all-or-nothing.
func (s *Sprint) SelectTasks(ctx context.Context, sprintID uint, taskIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sprints := repos.NewSprintRepository(tx)
		tasks := repos.NewTaskRepository(tx)

		sprint, err := sprints.Get(ctx, sprintID)
		if err != nil {
			return err
		}

		current, err := tasks.ListBySprint(ctx, sprintID)
		if err != nil {
			return err
		}

		selected := make(map[uint]bool, len(taskIDs))
		for _, id := range taskIDs {
			selected[id] = true
		}
		currentSet := make(map[uint]bool, len(current))
		var toRemove []uint
		for i := range current {
			currentSet[current[i].ID] = true
			if !selected[current[i].ID] {
				toRemove = append(toRemove, current[i].ID)
			}
		}
		var toAddIDs []uint
		for _, id := range taskIDs {
			if !currentSet[id] {
				toAddIDs = append(toAddIDs, id)
			}
		}

		toAdd, err := tasks.GetBatch(ctx, toAddIDs)
		if err != nil {
			return err
		}
		if len(toAdd) != len(toAddIDs) {
			return gorm.ErrRecordNotFound
		}

		if err := validation.CheckTaskSelection(sprint, toAdd); err != nil {
			return err
		}
		for i := range toAdd {
			if err := validation.CheckTaskSprint(&toAdd[i], sprint); err != nil {
				return err
			}
		}

		if err := tasks.SetSprint(ctx, toAddIDs, &sprint.ID); err != nil {
			return err
		}
		return tasks.SetSprint(ctx, toRemove, nil)
	})
}

// Delete removes a sprint, clearing the sprint reference of its tasks first
func (s *Sprint) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sprints := repos.NewSprintRepository(tx)
		if _, err := sprints.Get(ctx, id); err != nil {
			return err
		}
		if err := repos.NewTaskRepository(tx).ClearSprint(ctx, id); err != nil {
			return err
		}
		return sprints.Delete(ctx, id)
	})
}
