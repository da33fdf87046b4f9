// Package routes wires the v1 API routes to their handlers
package routes

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/pmflow/flow/internal/api/v1/handlers"
)

// SetupRoutes configures all the v1 routes
func SetupRoutes(router fiber.Router, h *handlers.APIHandler) {
	projects := router.Group("/projects")
	projects.Post("/", h.CreateProject)
	projects.Get("/", h.ListProjects)
	projects.Get("/:id", h.GetProject)
	projects.Get("/:id/tasks", h.ListProjectTasks)
	projects.Delete("/:id", h.DeleteProject)

	sprints := router.Group("/sprints")
	sprints.Post("/", h.CreateSprint)
	sprints.Get("/", h.ListSprints)
	sprints.Get("/:id", h.GetSprint)
	sprints.Put("/:id", h.UpdateSprint)
	sprints.Delete("/:id", h.DeleteSprint)
	sprints.Post("/:id/:action", h.SetSprintState)
	sprints.Get("/:id/tasks", h.ListSprintTasks)
	sprints.Put("/:id/tasks", h.SelectSprintTasks)

	tasks := router.Group("/tasks")
	tasks.Post("/", h.CreateTask)
	tasks.Get("/:id", h.GetTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)
	tasks.Post("/:id/assign-sprint", h.AssignTaskSprint)
	tasks.Post("/:id/unassign-sprint", h.UnassignTaskSprint)
}

// Register registers the v1 routes
func Register(app *fiber.App, h *handlers.APIHandler) {
	v1Group := app.Group("/api/v1")
	SetupRoutes(v1Group, h)
}
