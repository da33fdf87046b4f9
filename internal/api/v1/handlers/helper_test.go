package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	. "github.com/pmflow/flow/internal/api/v1/handlers"
	"github.com/pmflow/flow/internal/api/v1/routes"
	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/db/repos"
	"github.com/pmflow/flow/internal/services"
)

// Every handler test runs against this fixed current date
var handlerTestToday = time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)

// APIHandlerTestSuite provides a base test suite with the full route tree
// wired over an in-memory database and a fixed clock
type APIHandlerTestSuite struct {
	suite.Suite
	DB  *gorm.DB
	app *fiber.App
}

func (s *APIHandlerTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		s.T().Fatal("failed to connect database")
	}

	err = db.AutoMigrate(&models.Project{}, &models.Sprint{}, &models.Task{})
	if err != nil {
		s.T().Fatal("failed to migrate database schema")
	}

	s.DB = db

	sprintService := services.NewSprintService(db).
		WithClock(func() time.Time { return handlerTestToday })
	handler := NewAPIHandler(
		services.NewProjectService(db),
		sprintService,
		services.NewTaskService(db),
	)

	s.app = fiber.New()
	routes.Register(s.app, handler)
}

func (s *APIHandlerTestSuite) TearDownTest() {
	sqlDB, err := s.DB.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

// request performs a JSON request against the test app and returns the response
func (s *APIHandlerTestSuite) request(method, path string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// errorMessage extracts the error field from a JSON error response
func (s *APIHandlerTestSuite) errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var result map[string]interface{}
	s.Require().NoError(json.Unmarshal(body, &result))
	msg, _ := result["error"].(string)
	return msg
}

func (s *APIHandlerTestSuite) decodeSprint(resp *http.Response) models.Sprint {
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var sprint models.Sprint
	s.Require().NoError(json.Unmarshal(body, &sprint))
	return sprint
}

func (s *APIHandlerTestSuite) decodeTask(resp *http.Response) models.Task {
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var task models.Task
	s.Require().NoError(json.Unmarshal(body, &task))
	return task
}

func (s *APIHandlerTestSuite) createProject(name string) *models.Project {
	project := &models.Project{Name: name}
	s.Require().NoError(repos.NewProjectRepository(s.DB).Create(context.Background(), project))
	return project
}

func (s *APIHandlerTestSuite) createSprintViaAPI(projectID uint) models.Sprint {
	resp := s.request("POST", "/api/v1/sprints/", SprintCreateParams{
		Name:      "Sprint 1",
		ProjectID: projectID,
		StartDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.July, 14, 0, 0, 0, 0, time.UTC),
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	return s.decodeSprint(resp)
}
