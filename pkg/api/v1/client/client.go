// Package client provides the API client for interacting with the Flow API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/pmflow/flow/internal/api/v1/handlers"
	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/services"
)

// DefaultBaseURL is the default base URL for the API
const DefaultBaseURL = "http://localhost:8080"

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Project Endpoints
	CreateProject(ctx context.Context, params handlers.ProjectCreateParams) (models.Project, error)
	GetProject(ctx context.Context, id uint) (models.Project, error)
	ListProjects(ctx context.Context, opts *models.ListOptions) ([]models.Project, error)
	DeleteProject(ctx context.Context, id uint) error

	// Sprint Endpoints
	CreateSprint(ctx context.Context, params handlers.SprintCreateParams) (models.Sprint, error)
	GetSprint(ctx context.Context, id uint) (models.Sprint, error)
	ListSprints(ctx context.Context, projectID *uint, opts *models.ListOptions) ([]models.Sprint, error)
	UpdateSprint(ctx context.Context, id uint, params services.SprintUpdateParams) (models.Sprint, error)
	DeleteSprint(ctx context.Context, id uint) error
	SetSprintState(ctx context.Context, id uint, action string) (models.Sprint, error)
	GetSprintTasks(ctx context.Context, id uint) ([]models.Task, error)
	SelectSprintTasks(ctx context.Context, id uint, taskIDs []uint) ([]models.Task, error)

	// Task Endpoints
	CreateTask(ctx context.Context, params handlers.TaskCreateParams) (models.Task, error)
	GetTask(ctx context.Context, id uint) (models.Task, error)
	UpdateTask(ctx context.Context, id uint, params services.TaskUpdateParams) (models.Task, error)
	DeleteTask(ctx context.Context, id uint) error
	AssignTaskSprint(ctx context.Context, taskID, sprintID uint) (models.Task, error)
	UnassignTaskSprint(ctx context.Context, taskID uint) (models.Task, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// executeRequest sends the HTTP request and decodes the response into v
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, v interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	statusCode, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		// The API reports failures as {"error": "..."}; fall back to the raw
		// body when the payload has another shape
		var apiErr struct {
			Error string `json:"error"`
		}
		message := string(respBody)
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &fiber.Error{
			Code:    statusCode,
			Message: message,
		}
	}

	if v != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// listQuery renders pagination options as a query string
func listQuery(opts *models.ListOptions) string {
	if opts == nil {
		return ""
	}
	return fmt.Sprintf("?limit=%d&offset=%d", opts.Limit, opts.Offset)
}

// HealthCheck checks the API server health
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var resp map[string]string
	err := c.executeRequest(ctx, http.MethodGet, "/health", nil, &resp)
	return resp, err
}

// CreateProject creates a new project
func (c *APIClient) CreateProject(ctx context.Context, params handlers.ProjectCreateParams) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/projects", params, &project)
	return project, err
}

// GetProject retrieves a project by ID
func (c *APIClient) GetProject(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", id), nil, &project)
	return project, err
}

// ListProjects lists projects with pagination
func (c *APIClient) ListProjects(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	var resp handlers.ListResponse[models.Project]
	err := c.executeRequest(ctx, http.MethodGet, "/api/v1/projects"+listQuery(opts), nil, &resp)
	return resp.Rows, err
}

// DeleteProject deletes a project by ID
func (c *APIClient) DeleteProject(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", id), nil, nil)
}

// CreateSprint creates a new sprint
func (c *APIClient) CreateSprint(ctx context.Context, params handlers.SprintCreateParams) (models.Sprint, error) {
	var sprint models.Sprint
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/sprints", params, &sprint)
	return sprint, err
}

// GetSprint retrieves a sprint by ID
func (c *APIClient) GetSprint(ctx context.Context, id uint) (models.Sprint, error) {
	var sprint models.Sprint
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/sprints/%d", id), nil, &sprint)
	return sprint, err
}

// ListSprints lists sprints, optionally filtered by project
func (c *APIClient) ListSprints(ctx context.Context, projectID *uint, opts *models.ListOptions) ([]models.Sprint, error) {
	endpoint := "/api/v1/sprints" + listQuery(opts)
	if projectID != nil {
		sep := "?"
		if opts != nil {
			sep = "&"
		}
		endpoint += fmt.Sprintf("%sproject_id=%d", sep, *projectID)
	}
	var resp handlers.ListResponse[models.Sprint]
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp.Rows, err
}

// UpdateSprint applies a partial update to a sprint
func (c *APIClient) UpdateSprint(ctx context.Context, id uint, params services.SprintUpdateParams) (models.Sprint, error) {
	var sprint models.Sprint
	err := c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/sprints/%d", id), params, &sprint)
	return sprint, err
}

// DeleteSprint deletes a sprint by ID
func (c *APIClient) DeleteSprint(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/sprints/%d", id), nil, nil)
}

// SetSprintState requests one of the manual override actions: set-auto,
// set-planned, set-active or set-done
func (c *APIClient) SetSprintState(ctx context.Context, id uint, action string) (models.Sprint, error) {
	var sprint models.Sprint
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/sprints/%d/%s", id, action), nil, &sprint)
	return sprint, err
}

// GetSprintTasks reads the sprint's current task selection
func (c *APIClient) GetSprintTasks(ctx context.Context, id uint) ([]models.Task, error) {
	var resp handlers.ListResponse[models.Task]
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/sprints/%d/tasks", id), nil, &resp)
	return resp.Rows, err
}

// SelectSprintTasks replaces the sprint's task selection
func (c *APIClient) SelectSprintTasks(ctx context.Context, id uint, taskIDs []uint) ([]models.Task, error) {
	params := handlers.TaskSelectionParams{TaskIDs: taskIDs}
	var resp handlers.ListResponse[models.Task]
	err := c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/sprints/%d/tasks", id), params, &resp)
	return resp.Rows, err
}

// CreateTask creates a new task
func (c *APIClient) CreateTask(ctx context.Context, params handlers.TaskCreateParams) (models.Task, error) {
	var task models.Task
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/tasks", params, &task)
	return task, err
}

// GetTask retrieves a task by ID
func (c *APIClient) GetTask(ctx context.Context, id uint) (models.Task, error) {
	var task models.Task
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", id), nil, &task)
	return task, err
}

// UpdateTask applies a partial update to a task
func (c *APIClient) UpdateTask(ctx context.Context, id uint, params services.TaskUpdateParams) (models.Task, error) {
	var task models.Task
	err := c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", id), params, &task)
	return task, err
}

// DeleteTask deletes a task by ID
func (c *APIClient) DeleteTask(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", id), nil, nil)
}

// AssignTaskSprint assigns a task to a sprint
func (c *APIClient) AssignTaskSprint(ctx context.Context, taskID, sprintID uint) (models.Task, error) {
	params := handlers.TaskAssignSprintParams{SprintID: sprintID}
	var task models.Task
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/assign-sprint", taskID), params, &task)
	return task, err
}

// UnassignTaskSprint clears a task's sprint reference
func (c *APIClient) UnassignTaskSprint(ctx context.Context, taskID uint) (models.Task, error) {
	var task models.Task
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/unassign-sprint", taskID), nil, &task)
	return task, err
}
