package routes

import (
	"github.com/gofiber/fiber/v2"

	"attendee.link/handlers/middleware"
	"attendee.link/handlers/public"
	"attendee.link/services"
)

func registerPublicRoutes(app *fiber.App, authService services.IAuthService) {
	registrationHandler := public.NewRegistrationHandler()

	events := app.Group("/events", middleware.OptionalAuth(authService))
	events.Get("/:id/register", registrationHandler.GetForm)
	events.Post("/:id/register", registrationHandler.Register)
}
