package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	. "github.com/pmflow/flow/internal/api/v1/handlers"
	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/db/repos"
	"github.com/pmflow/flow/internal/validation"
)

type SprintHandlerTestSuite struct {
	APIHandlerTestSuite
}

func TestSprintHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SprintHandlerTestSuite))
}

func (s *SprintHandlerTestSuite) TestCreateSprint() {
	project := s.createProject("alpha")

	resp := s.request("POST", "/api/v1/sprints/", SprintCreateParams{
		Name:      "Sprint 1",
		ProjectID: project.ID,
		StartDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
	})
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	sprint := s.decodeSprint(resp)
	s.NotZero(sprint.ID)
	s.Equal(models.SprintStateActive, sprint.State)
}

func (s *SprintHandlerTestSuite) TestCreateSprintMissingFields() {
	resp := s.request("POST", "/api/v1/sprints/", SprintCreateParams{Name: "Sprint 1"})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal(ErrMsgSprintProjectRequired, s.errorMessage(resp))
}

func (s *SprintHandlerTestSuite) TestCreateSprintValidationMessages() {
	project := s.createProject("alpha")

	// The validation message comes back verbatim with a 422
	resp := s.request("POST", "/api/v1/sprints/", SprintCreateParams{
		Name:      "Sprint 1",
		ProjectID: project.ID,
		StartDate: time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
	})
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
	s.Equal(validation.MsgSprintDateOrder, s.errorMessage(resp))

	resp = s.request("POST", "/api/v1/sprints/", SprintCreateParams{
		Name:      "Sprint 1",
		ProjectID: project.ID,
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
	})
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
	s.Equal(validation.MsgSprintDuration, s.errorMessage(resp))
}

func (s *SprintHandlerTestSuite) TestSecondActiveSprintRejected() {
	project := s.createProject("alpha")

	create := func(name string) (int, string) {
		resp := s.request("POST", "/api/v1/sprints/", SprintCreateParams{
			Name:      name,
			ProjectID: project.ID,
			StartDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
		})
		if resp.StatusCode == fiber.StatusCreated {
			return resp.StatusCode, ""
		}
		return resp.StatusCode, s.errorMessage(resp)
	}

	code, _ := create("Sprint 1")
	s.Equal(fiber.StatusCreated, code)

	code, msg := create("Sprint 2")
	s.Equal(fiber.StatusUnprocessableEntity, code)
	s.Equal(validation.MsgSprintSingleActive, msg)
}

func (s *SprintHandlerTestSuite) TestSetSprintStateActions() {
	project := s.createProject("alpha")
	created := s.createSprintViaAPI(project.ID)

	resp := s.request("POST", fmt.Sprintf("/api/v1/sprints/%d/set-active", created.ID), nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	sprint := s.decodeSprint(resp)
	s.Equal(models.SprintStateModeManual, sprint.StateMode)
	s.Equal(models.SprintStateActive, sprint.State)

	resp = s.request("POST", fmt.Sprintf("/api/v1/sprints/%d/set-auto", created.ID), nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	sprint = s.decodeSprint(resp)
	s.Equal(models.SprintStateModeAuto, sprint.StateMode)
	s.Equal(models.SprintStatePlanned, sprint.State)

	resp = s.request("POST", fmt.Sprintf("/api/v1/sprints/%d/set-archived", created.ID), nil)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *SprintHandlerTestSuite) TestSetSprintStatePastSprint() {
	project := s.createProject("alpha")

	resp := s.request("POST", "/api/v1/sprints/", SprintCreateParams{
		Name:      "Sprint 0",
		ProjectID: project.ID,
		StartDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC),
	})
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	created := s.decodeSprint(resp)

	resp = s.request("POST", fmt.Sprintf("/api/v1/sprints/%d/set-active", created.ID), nil)
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
	s.Equal(validation.MsgSprintPastManual, s.errorMessage(resp))
}

func (s *SprintHandlerTestSuite) TestGetSprintNotFound() {
	resp := s.request("GET", "/api/v1/sprints/999", nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal(ErrMsgSprintNotFound, s.errorMessage(resp))
}

func (s *SprintHandlerTestSuite) TestSelectSprintTasks() {
	project := s.createProject("alpha")
	other := s.createProject("beta")
	sprint := s.createSprintViaAPI(project.ID)

	taskRepo := repos.NewTaskRepository(s.DB)
	mine := &models.Task{ProjectID: project.ID, Name: "Task 1"}
	s.Require().NoError(taskRepo.Create(context.Background(), mine))
	foreign := &models.Task{ProjectID: other.ID, Name: "Task 1"}
	s.Require().NoError(taskRepo.Create(context.Background(), foreign))

	// A selection containing a foreign task is rejected whole
	resp := s.request("PUT", fmt.Sprintf("/api/v1/sprints/%d/tasks", sprint.ID),
		TaskSelectionParams{TaskIDs: []uint{mine.ID, foreign.ID}})
	s.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
	s.Equal(validation.MsgSelectionProject, s.errorMessage(resp))

	// A clean selection links the tasks
	resp = s.request("PUT", fmt.Sprintf("/api/v1/sprints/%d/tasks", sprint.ID),
		TaskSelectionParams{TaskIDs: []uint{mine.ID}})
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.request("GET", fmt.Sprintf("/api/v1/sprints/%d/tasks", sprint.ID), nil)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var list ListResponse[models.Task]
	s.Require().NoError(json.Unmarshal(body, &list))
	s.Len(list.Rows, 1)
	s.Equal(mine.ID, list.Rows[0].ID)
}
