package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		input  string
		valid  bool
		status TaskStatus
	}{
		{input: "todo", valid: true, status: TaskStatusTodo},
		{input: "in_progress", valid: true, status: TaskStatusInProgress},
		{input: "done", valid: true, status: TaskStatusDone},
		{input: "blocked", valid: false},
		{input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := ParseTaskStatus(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.status, status)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTaskBeforeCreate(t *testing.T) {
	task := Task{Name: "Write docs", ProjectID: 1}
	require.NoError(t, task.BeforeCreate(nil))
	assert.Equal(t, TaskStatusTodo, task.Status)

	missingName := Task{ProjectID: 1}
	assert.Error(t, missingName.BeforeCreate(nil))

	missingProject := Task{Name: "Write docs"}
	assert.Error(t, missingProject.BeforeCreate(nil))
}
