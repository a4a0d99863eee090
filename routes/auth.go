package routes

import (
	"github.com/gofiber/fiber/v2"

	"attendee.link/handlers/admin"
)

func registerAuthRoutes(app *fiber.App) {
	authHandler := admin.NewAuthHandler()

	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
}
