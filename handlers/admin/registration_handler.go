package admin

import (
	"github.com/gofiber/fiber/v2"

	"attendee.link/handlers"
	"attendee.link/services"
)

// RegistrationHandler serves the back-office side of event registrations.
type RegistrationHandler struct {
	registrationService services.IRegistrationService
}

func NewRegistrationHandler() *RegistrationHandler {
	return &RegistrationHandler{registrationService: services.NewRegistrationService()}
}

// ResponseDetails (GET /admin/events/responses/:responseId)
func (h *RegistrationHandler) ResponseDetails(c *fiber.Ctx) error {
	id, ok := parseID(c, "responseId")
	if !ok {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid registration id")
	}
	details, err := h.registrationService.GetResponseDetails(c.UserContext(), id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, details)
}

// Accept (GET /admin/events/responses/:responseId/accept-user)
func (h *RegistrationHandler) Accept(c *fiber.Ctx) error {
	id, ok := parseID(c, "responseId")
	if !ok {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid registration id")
	}
	registration, err := h.registrationService.Accept(c.UserContext(), id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, registration)
}
