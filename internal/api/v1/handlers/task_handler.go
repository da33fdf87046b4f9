package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/services"
)

// CreateTask handles creating a task
func (h *APIHandler) CreateTask(c *fiber.Ctx) error {
	var params TaskCreateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	task := models.Task{
		Name:      params.Name,
		ProjectID: params.ProjectID,
		SprintID:  params.SprintID,
		Status:    params.Status,
		Deadline:  params.Deadline,
	}
	if err := h.task.Create(c.Context(), &task); err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgTaskCreateFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTask handles retrieving a task by ID
func (h *APIHandler) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	task, err := h.task.Get(c.Context(), uint(id))
	if err != nil {
		return respondServiceError(c, err, ErrMsgTaskNotFound, ErrMsgTaskUpdateFailed)
	}

	return c.JSON(task)
}

// ListProjectTasks handles listing all tasks of a project
func (h *APIHandler) ListProjectTasks(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	opts := paginationFromQuery(c)

	tasks, err := h.task.ListByProject(c.Context(), uint(id), opts)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjNotFound, ErrMsgTaskUpdateFailed)
	}

	return c.JSON(ListResponse[models.Task]{
		Rows: tasks,
		Pagination: PaginationResponse{
			Total:  len(tasks),
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// UpdateTask handles a partial update of a task
func (h *APIHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	var params services.TaskUpdateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	task, err := h.task.Update(c.Context(), uint(id), params)
	if err != nil {
		return respondServiceError(c, err, ErrMsgTaskNotFound, ErrMsgTaskUpdateFailed)
	}

	return c.JSON(task)
}

// AssignTaskSprint handles assigning a task to a sprint
func (h *APIHandler) AssignTaskSprint(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	var params TaskAssignSprintParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	task, err := h.task.AssignSprint(c.Context(), uint(id), params.SprintID)
	if err != nil {
		return respondServiceError(c, err, ErrMsgTaskNotFound, ErrMsgTaskUpdateFailed)
	}

	return c.JSON(task)
}

// UnassignTaskSprint handles clearing a task's sprint reference
func (h *APIHandler) UnassignTaskSprint(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	task, err := h.task.UnassignSprint(c.Context(), uint(id))
	if err != nil {
		return respondServiceError(c, err, ErrMsgTaskNotFound, ErrMsgTaskUpdateFailed)
	}

	return c.JSON(task)
}

// DeleteTask handles deleting a task by ID
func (h *APIHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	if err := h.task.Delete(c.Context(), uint(id)); err != nil {
		return respondServiceError(c, err, ErrMsgTaskNotFound, ErrMsgTaskDeleteFailed)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
