// Package handlers provides HTTP request handling
package handlers

import "github.com/pmflow/flow/internal/services"

// APIHandler is a handler for the API
type APIHandler struct {
	project *services.Project
	sprint  *services.Sprint
	task    *services.Task
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(project *services.Project, sprint *services.Sprint, task *services.Task) *APIHandler {
	return &APIHandler{
		project: project,
		sprint:  sprint,
		task:    task,
	}
}
