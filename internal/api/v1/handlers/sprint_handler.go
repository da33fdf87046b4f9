package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/pmflow/flow/internal/db/models"
	"github.com/pmflow/flow/internal/services"
)

// CreateSprint handles creating a sprint
func (h *APIHandler) CreateSprint(c *fiber.Ctx) error {
	var params SprintCreateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	sprint := models.Sprint{
		Name:        params.Name,
		ProjectID:   params.ProjectID,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		StateMode:   params.StateMode,
		StateManual: params.StateManual,
	}
	if err := h.sprint.Create(c.Context(), &sprint); err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintCreateFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(sprint)
}

// GetSprint handles retrieving a sprint by ID
func (h *APIHandler) GetSprint(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	sprint, err := h.sprint.Get(c.Context(), uint(id))
	if err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintListFailed)
	}

	return c.JSON(sprint)
}

// ListSprints handles listing sprints, optionally filtered by project
func (h *APIHandler) ListSprints(c *fiber.Ctx) error {
	opts := paginationFromQuery(c)

	var projectID *uint
	if pid := c.QueryInt("project_id", 0); pid > 0 {
		p := uint(pid)
		projectID = &p
	}

	sprints, err := h.sprint.List(c.Context(), projectID, opts)
	if err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintListFailed)
	}

	return c.JSON(ListResponse[models.Sprint]{
		Rows: sprints,
		Pagination: PaginationResponse{
			Total:  len(sprints),
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// UpdateSprint handles a partial update of a sprint
func (h *APIHandler) UpdateSprint(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	var params services.SprintUpdateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	sprint, err := h.sprint.Update(c.Context(), uint(id), params)
	if err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintUpdateFailed)
	}

	return c.JSON(sprint)
}

// SetSprintState handles the four manual override actions. The action name
// comes from the route.
func (h *APIHandler) SetSprintState(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	var sprint *models.Sprint
	switch c.Params("action") {
	case "set-auto":
		sprint, err = h.sprint.SetAuto(c.Context(), uint(id))
	case "set-planned":
		sprint, err = h.sprint.SetPlanned(c.Context(), uint(id))
	case "set-active":
		sprint, err = h.sprint.SetActive(c.Context(), uint(id))
	case "set-done":
		sprint, err = h.sprint.SetDone(c.Context(), uint(id))
	default:
		return respondWithError(c, fiber.StatusBadRequest, "Unknown sprint action")
	}
	if err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintUpdateFailed)
	}

	return c.JSON(sprint)
}

// ListSprintTasks handles reading the sprint's current task selection
func (h *APIHandler) ListSprintTasks(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	tasks, err := h.sprint.Tasks(c.Context(), uint(id))
	if err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintListFailed)
	}

	return c.JSON(ListResponse[models.Task]{
		Rows: tasks,
		Pagination: PaginationResponse{
			Total: len(tasks),
			Limit: len(tasks),
		},
	})
}

// SelectSprintTasks handles replacing the sprint's task selection
func (h *APIHandler) SelectSprintTasks(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	var params TaskSelectionParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	if err := h.sprint.SelectTasks(c.Context(), uint(id), params.TaskIDs); err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintUpdateFailed)
	}

	tasks, err := h.sprint.Tasks(c.Context(), uint(id))
	if err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintListFailed)
	}

	return c.JSON(ListResponse[models.Task]{
		Rows: tasks,
		Pagination: PaginationResponse{
			Total: len(tasks),
			Limit: len(tasks),
		},
	})
}

// DeleteSprint handles deleting a sprint, clearing its tasks' sprint reference
func (h *APIHandler) DeleteSprint(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	if err := h.sprint.Delete(c.Context(), uint(id)); err != nil {
		return respondServiceError(c, err, ErrMsgSprintNotFound, ErrMsgSprintDeleteFailed)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
