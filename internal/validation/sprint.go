package validation

import (
	"time"

	"github.com/pmflow/flow/internal/db/models"
)

// Sprint validation messages. These are stable literals surfaced to
// integrations, do not reword them.
const (
	MsgSprintDateOrder      = "sprint end date cannot be before the start date"
	MsgSprintDuration       = "sprint duration cannot exceed 4 weeks (28 days)"
	MsgSprintPastManual     = "a sprint whose end date is in the past cannot be set to planned or active"
	MsgSprintSingleActive   = "only one active sprint is allowed per project"
	MsgSprintTasksProject   = "all tasks in the sprint must belong to the assigned project"
	MsgSprintProjectHasTask = "cannot change the project of a sprint that has tasks"
	MsgSprintProjectState   = "cannot change the project of a sprint that is active or done"
	MsgSelectionProject     = "tasks must belong to assigned project"
	MsgSelectionNoProject   = "select project before adding tasks"
)

// CheckSprintDates enforces date ordering and the maximum sprint duration
func CheckSprintDates(sprint *models.Sprint) error {
	if sprint.StartDate.IsZero() || sprint.EndDate.IsZero() {
		return nil
	}
	if models.DateOf(sprint.EndDate).Before(models.DateOf(sprint.StartDate)) {
		return Errorf(MsgSprintDateOrder)
	}
	if sprint.DurationDays() > models.MaxSprintDurationDays {
		return Errorf(MsgSprintDuration)
	}
	return nil
}

// CheckSprintManualState rejects a manual-mode sprint that is held planned or
// active even though its end date is already in the past. Only the end date
// participates in this check.
func CheckSprintManualState(sprint *models.Sprint, today time.Time) error {
	if sprint.StartDate.IsZero() || sprint.EndDate.IsZero() {
		return nil
	}
	if sprint.StateMode != models.SprintStateModeManual {
		return nil
	}
	if !models.DateOf(sprint.EndDate).Before(models.DateOf(today)) {
		return nil
	}
	if sprint.StateManual == models.SprintStatePlanned || sprint.StateManual == models.SprintStateActive {
		return Errorf(MsgSprintPastManual)
	}
	return nil
}

// CheckSingleActiveSprint rejects an active sprint when another sprint of the
// same project is already active. The caller supplies the count of other
// active sprints, queried inside the same transaction as the write.
func CheckSingleActiveSprint(sprint *models.Sprint, otherActive int64) error {
	if sprint.State != models.SprintStateActive {
		return nil
	}
	if otherActive > 0 {
		return Errorf(MsgSprintSingleActive)
	}
	return nil
}

// CheckSprintTasksProject enforces that every task linked to the sprint
// belongs to the sprint's project
func CheckSprintTasksProject(sprint *models.Sprint, tasks []models.Task) error {
	if sprint.ProjectID == 0 {
		return nil
	}
	for i := range tasks {
		if tasks[i].ProjectID != sprint.ProjectID {
			return Errorf(MsgSprintTasksProject)
		}
	}
	return nil
}

// CheckSprintProjectChange guards the sprint's project reference: it is
// immutable once the sprint has linked tasks or once the sprint is active or
// done. The guard fires whenever a write contains the project field, even if
// the value is unchanged.
func CheckSprintProjectChange(sprint *models.Sprint, taskCount int64) error {
	if taskCount > 0 {
		return Errorf(MsgSprintProjectHasTask)
	}
	if sprint.State == models.SprintStateActive || sprint.State == models.SprintStateDone {
		return Errorf(MsgSprintProjectState)
	}
	return nil
}

// CheckTaskSelection enforces that every task newly selected for the sprint
// belongs to the sprint's project. The whole selection is rejected on the
// first mismatch.
func CheckTaskSelection(sprint *models.Sprint, toAdd []models.Task) error {
	if sprint.ProjectID == 0 {
		return Errorf(MsgSelectionNoProject)
	}
	for i := range toAdd {
		if toAdd[i].ProjectID != sprint.ProjectID {
			return Errorf(MsgSelectionProject)
		}
	}
	return nil
}
