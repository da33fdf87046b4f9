package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for task model
const (
	// TaskSprintIDField is the field name for the task's sprint reference
	TaskSprintIDField = "sprint_id"
	// TaskStatusField is the field name for task status
	TaskStatusField = "status"
)

// TaskStatus represents the working state of a task
type TaskStatus string

// Task status constants
const (
	// TaskStatusTodo indicates the task has not been started
	TaskStatusTodo TaskStatus = "todo"
	// TaskStatusInProgress indicates the task is being worked on
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusDone indicates the task has been completed
	TaskStatusDone TaskStatus = "done"
)

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts a string to a TaskStatus type
func ParseTaskStatus(str string) (TaskStatus, error) {
	switch str {
	case string(TaskStatusTodo):
		return TaskStatusTodo, nil
	case string(TaskStatusInProgress):
		return TaskStatusInProgress, nil
	case string(TaskStatusDone):
		return TaskStatusDone, nil
	default:
		return "", fmt.Errorf("invalid task status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for TaskStatus
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseTaskStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Task is a unit of work belonging to a project, optionally linked to one sprint
type Task struct {
	gorm.Model
	ProjectID uint       `json:"project_id" gorm:"not null; index"`
	SprintID  *uint      `json:"sprint_id,omitempty" gorm:"index"`
	Name      string     `json:"name" gorm:"not null; index"`
	Status    TaskStatus `json:"status" gorm:"not null; index; default:'todo'"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Project   *Project   `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Sprint    *Sprint    `json:"-" gorm:"foreignKey:SprintID"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.ProjectID == 0 {
		return fmt.Errorf("task project cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	return t.Validate()
}
