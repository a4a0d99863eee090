package routes

import (
	"github.com/gofiber/fiber/v2"

	"attendee.link/handlers/admin"
	"attendee.link/handlers/middleware"
	"attendee.link/services"
)

func registerAdminRoutes(app *fiber.App, authService services.IAuthService) {
	formHandler := admin.NewFormHandler()
	registrationHandler := admin.NewRegistrationHandler()

	group := app.Group("/admin", middleware.RequireAuth(authService))

	forms := group.Group("/forms")
	forms.Get("/", formHandler.Search)
	forms.Post("/", formHandler.Create)
	forms.Get("/:id", formHandler.Details)
	forms.Patch("/:id", formHandler.Update)
	forms.Delete("/:id", formHandler.Delete)
	forms.Get("/:id/responses", formHandler.Responses)

	events := group.Group("/events")
	events.Get("/:id/forms", formHandler.EventForms)
	events.Get("/responses/:responseId", registrationHandler.ResponseDetails)
	events.Get("/responses/:responseId/accept-user", registrationHandler.Accept)
}
