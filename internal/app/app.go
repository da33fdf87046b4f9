// Package app assembles the fiber application
package app

import (
	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/api/v1/handlers"
	"github.com/pmflow/flow/internal/api/v1/middleware"
	"github.com/pmflow/flow/internal/api/v1/routes"
	"github.com/pmflow/flow/internal/services"
)

// New builds the fiber app with middleware, health check and v1 routes
// wired to services over the given database
func New(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(middleware.Logger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	h := handlers.NewAPIHandler(
		services.NewProjectService(db),
		services.NewSprintService(db),
		services.NewTaskService(db),
	)
	routes.Register(app, h)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
