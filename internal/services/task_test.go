package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/validation"
)

type TaskServiceTestSuite struct {
	ServiceTestSuite
}

func TestTaskService(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func (s *TaskServiceTestSuite) TestCreate() {
	project := s.createProject("alpha")
	task := s.createTask(project.ID, "Write docs")
	s.NotZero(task.ID)
	s.Equal(models.TaskStatusTodo, task.Status)
	s.Nil(task.Deadline)
}

func (s *TaskServiceTestSuite) TestCreateIntoSprintSuggestsDeadline() {
	project := s.createProject("alpha")
	sprint := s.createSprint(project.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))

	task := &models.Task{ProjectID: project.ID, SprintID: &sprint.ID, Name: "Task 1"}
	s.Require().NoError(s.task.Create(s.ctx, task))
	s.Require().NotNil(task.Deadline)
	s.Equal(day(2024, time.July, 14), models.DateOf(*task.Deadline))
}

func (s *TaskServiceTestSuite) TestCreateIntoSprintKeepsOwnDeadline() {
	project := s.createProject("alpha")
	sprint := s.createSprint(project.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))

	deadline := day(2024, time.July, 10)
	task := &models.Task{ProjectID: project.ID, SprintID: &sprint.ID, Name: "Task 1", Deadline: &deadline}
	s.Require().NoError(s.task.Create(s.ctx, task))
	s.Equal(deadline, models.DateOf(*task.Deadline))
}

func (s *TaskServiceTestSuite) TestCreateIntoForeignSprint() {
	alpha := s.createProject("alpha")
	beta := s.createProject("beta")
	sprint := s.createSprint(alpha.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))

	task := &models.Task{ProjectID: beta.ID, SprintID: &sprint.ID, Name: "Task 1"}
	err := s.task.Create(s.ctx, task)
	s.Require().Error(err)
	s.True(validation.IsValidationError(err))
	s.Equal(validation.MsgTaskSprintProject, err.Error())
}

func (s *TaskServiceTestSuite) TestAssignSprint() {
	project := s.createProject("alpha")
	sprint := s.createSprint(project.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))
	task := s.createTask(project.ID, "Task 1")

	updated, err := s.task.AssignSprint(s.ctx, task.ID, sprint.ID)
	s.Require().NoError(err)
	s.Require().NotNil(updated.SprintID)
	s.Equal(sprint.ID, *updated.SprintID)

	// The advisory deadline default kicked in
	s.Require().NotNil(updated.Deadline)
	s.Equal(day(2024, time.July, 14), models.DateOf(*updated.Deadline))
}

func (s *TaskServiceTestSuite) TestAssignSprintProjectMismatch() {
	alpha := s.createProject("alpha")
	beta := s.createProject("beta")
	sprint := s.createSprint(alpha.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))
	task := s.createTask(beta.ID, "Task 1")

	_, err := s.task.AssignSprint(s.ctx, task.ID, sprint.ID)
	s.Require().Error(err)
	s.Equal(validation.MsgTaskSprintProject, err.Error())
	s.Nil(s.taskSprintID(task.ID))
}

func (s *TaskServiceTestSuite) TestAssignSprintLateDeadline() {
	project := s.createProject("alpha")
	sprint := s.createSprint(project.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))

	late := day(2024, time.July, 20)
	task := &models.Task{ProjectID: project.ID, Name: "Task 1", Deadline: &late}
	s.Require().NoError(s.task.Create(s.ctx, task))

	_, err := s.task.AssignSprint(s.ctx, task.ID, sprint.ID)
	s.Require().Error(err)
	s.Equal(validation.MsgTaskDeadline, err.Error())
}

func (s *TaskServiceTestSuite) TestUnassignSprint() {
	project := s.createProject("alpha")
	sprint := s.createSprint(project.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))
	task := s.createTask(project.ID, "Task 1")

	_, err := s.task.AssignSprint(s.ctx, task.ID, sprint.ID)
	s.Require().NoError(err)

	updated, err := s.task.UnassignSprint(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Nil(updated.SprintID)

	// Unassigning an unlinked task is a no-op
	updated, err = s.task.UnassignSprint(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Nil(updated.SprintID)
}

func (s *TaskServiceTestSuite) TestUpdateRevalidatesSprintRules() {
	project := s.createProject("alpha")
	sprint := s.createSprint(project.ID, "Sprint 1", day(2024, time.July, 1), day(2024, time.July, 14))
	task := s.createTask(project.ID, "Task 1")
	_, err := s.task.AssignSprint(s.ctx, task.ID, sprint.ID)
	s.Require().NoError(err)

	// Moving the deadline past the sprint end is rejected
	late := day(2024, time.July, 20)
	_, err = s.task.Update(s.ctx, task.ID, TaskUpdateParams{Deadline: &late})
	s.Require().Error(err)
	s.Equal(validation.MsgTaskDeadline, err.Error())

	// Moving it inside the sprint is fine
	early := day(2024, time.July, 5)
	updated, err := s.task.Update(s.ctx, task.ID, TaskUpdateParams{Deadline: &early})
	s.Require().NoError(err)
	s.Equal(early, models.DateOf(*updated.Deadline))

	// Changing the project away from the sprint's is rejected
	beta := s.createProject("beta")
	_, err = s.task.Update(s.ctx, task.ID, TaskUpdateParams{ProjectID: &beta.ID})
	s.Require().Error(err)
	s.Equal(validation.MsgTaskSprintProject, err.Error())
}

func (s *TaskServiceTestSuite) TestUpdateStatus() {
	project := s.createProject("alpha")
	task := s.createTask(project.ID, "Task 1")

	status := models.TaskStatusInProgress
	updated, err := s.task.Update(s.ctx, task.ID, TaskUpdateParams{Status: &status})
	s.Require().NoError(err)
	s.Equal(models.TaskStatusInProgress, updated.Status)
}

func (s *TaskServiceTestSuite) TestDelete() {
	project := s.createProject("alpha")
	task := s.createTask(project.ID, "Task 1")

	s.Require().NoError(s.task.Delete(s.ctx, task.ID))

	_, err := s.task.Get(s.ctx, task.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	err = s.task.Delete(s.ctx, 999)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
