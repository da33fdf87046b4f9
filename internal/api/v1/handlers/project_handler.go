package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/pmflow/flow/internal/db/models"
)

// CreateProject handles creating a project
func (h *APIHandler) CreateProject(c *fiber.Ctx) error {
	var params ProjectCreateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	project := models.Project{
		Name:        params.Name,
		Description: params.Description,
	}
	if err := h.project.Create(c.Context(), &project); err != nil {
		return respondServiceError(c, err, ErrMsgProjNotFound, ErrMsgProjCreateFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject handles retrieving a project by ID
func (h *APIHandler) GetProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	project, err := h.project.Get(c.Context(), uint(id))
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjNotFound, ErrMsgProjListFailed)
	}

	return c.JSON(project)
}

// ListProjects handles listing all projects with pagination
func (h *APIHandler) ListProjects(c *fiber.Ctx) error {
	opts := paginationFromQuery(c)

	projects, err := h.project.List(c.Context(), opts)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjNotFound, ErrMsgProjListFailed)
	}

	return c.JSON(ListResponse[models.Project]{
		Rows: projects,
		Pagination: PaginationResponse{
			Total:  len(projects),
			Limit:  opts.Limit,
			Offset: opts.Offset,
		},
	})
}

// DeleteProject handles deleting a project by ID, cascading to its sprints
func (h *APIHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID)
	}

	if err := h.project.Delete(c.Context(), uint(id)); err != nil {
		return respondServiceError(c, err, ErrMsgProjNotFound, ErrMsgProjDeleteFailed)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// paginationFromQuery reads limit/offset query parameters with defaults
func paginationFromQuery(c *fiber.Ctx) *models.ListOptions {
	limit := c.QueryInt("limit", models.DefaultLimit)
	if limit <= 0 || limit > models.DefaultLimit {
		limit = models.DefaultLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return &models.ListOptions{Limit: limit, Offset: offset}
}
