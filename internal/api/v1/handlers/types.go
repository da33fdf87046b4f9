package handlers

import (
	"errors"
	"time"

	"github.com/pmflow/flow/internal/db/models"
)

// ProjectCreateParams is the request body for creating a project
type ProjectCreateParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate ensures the project creation parameters are valid
func (p *ProjectCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New(ErrMsgProjNameRequired)
	}
	return nil
}

// SprintCreateParams is the request body for creating a sprint. EndDate may
// be omitted, in which case it defaults to two weeks after StartDate.
type SprintCreateParams struct {
	Name        string                 `json:"name"`
	ProjectID   uint                   `json:"project_id"`
	StartDate   time.Time              `json:"start_date"`
	EndDate     time.Time              `json:"end_date,omitempty"`
	StateMode   models.SprintStateMode `json:"state_mode,omitempty"`
	StateManual models.SprintState     `json:"state_manual,omitempty"`
}

// Validate ensures the sprint creation parameters are valid
func (p *SprintCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New(ErrMsgSprintNameRequired)
	}
	if p.ProjectID == 0 {
		return errors.New(ErrMsgSprintProjectRequired)
	}
	if p.StartDate.IsZero() {
		return errors.New(ErrMsgSprintDatesRequired)
	}
	return nil
}

// TaskSelectionParams is the request body for replacing a sprint's task selection
type TaskSelectionParams struct {
	TaskIDs []uint `json:"task_ids"`
}

// TaskCreateParams is the request body for creating a task
type TaskCreateParams struct {
	Name      string            `json:"name"`
	ProjectID uint              `json:"project_id"`
	SprintID  *uint             `json:"sprint_id,omitempty"`
	Status    models.TaskStatus `json:"status,omitempty"`
	Deadline  *time.Time        `json:"deadline,omitempty"`
}

// Validate ensures the task creation parameters are valid
func (p *TaskCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New(ErrMsgTaskNameRequired)
	}
	if p.ProjectID == 0 {
		return errors.New(ErrMsgTaskProjectRequired)
	}
	return nil
}

// TaskAssignSprintParams is the request body for assigning a task to a sprint
type TaskAssignSprintParams struct {
	SprintID uint `json:"sprint_id"`
}

// Validate ensures the assignment parameters are valid
func (p *TaskAssignSprintParams) Validate() error {
	if p.SprintID == 0 {
		return errors.New(ErrMsgTaskSprintRequired)
	}
	return nil
}

// ListResponse is a generic list payload with pagination metadata
type ListResponse[T any] struct {
	Rows       []T                `json:"rows"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse describes the window a list response covers
type PaginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
