package validation

import (
	"github.com/pmflow/flow/internal/db/models"
)

// Task validation messages. Stable literals, do not reword.
const (
	MsgTaskSprintProject = "a task can only be assigned to a sprint belonging to the same project"
	MsgTaskDeadline      = "task deadline falls outside the sprint period"
)

// CheckTaskSprint enforces the cross-entity rules for a task linked to a
// sprint: the task must belong to the sprint's project and, when the task has
// a deadline, the deadline must not exceed the sprint's end date.
func CheckTaskSprint(task *models.Task, sprint *models.Sprint) error {
	if sprint == nil {
		return nil
	}
	if task.ProjectID != 0 && sprint.ProjectID != 0 && task.ProjectID != sprint.ProjectID {
		return Errorf(MsgTaskSprintProject)
	}
	if task.Deadline != nil && !sprint.EndDate.IsZero() &&
		models.DateOf(*task.Deadline).After(models.DateOf(sprint.EndDate)) {
		return Errorf(MsgTaskDeadline)
	}
	return nil
}
