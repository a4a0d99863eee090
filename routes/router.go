package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	"attendee.link/configs"
	"attendee.link/services"
)

// SetupRoutes wires the global middlewares and every route group.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	// Stored uploads (QR codes, form file answers) are served statically.
	app.Static("/static/uploads", configs.UploadDir())

	authService := services.NewAuthService()

	registerAuthRoutes(app)
	registerPublicRoutes(app, authService)
	registerAdminRoutes(app, authService)

	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":  "fail",
		"message": "resource not found",
	})
}
