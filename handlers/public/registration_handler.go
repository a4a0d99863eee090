// Package public holds the handlers mounted without authentication.
package public

import (
	"encoding/json"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"attendee.link/handlers"
	"attendee.link/handlers/middleware"
	"attendee.link/services"
)

// RegistrationHandler serves the public event-registration endpoints.
type RegistrationHandler struct {
	registrationService services.IRegistrationService
}

func NewRegistrationHandler() *RegistrationHandler {
	return &RegistrationHandler{registrationService: services.NewRegistrationService()}
}

// GetForm (GET /events/:id/register) returns the registration form shape.
func (h *RegistrationHandler) GetForm(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid event id")
	}

	view, svcErr := h.registrationService.GetRegistrationForm(c.UserContext(), uint(eventID))
	if svcErr != nil {
		return handlers.ServiceError(c, svcErr)
	}
	return handlers.Success(c, view)
}

// parseFormFields reads the formFields payload from either a multipart part
// or a JSON body.
func parseFormFields(c *fiber.Ctx) ([]services.FieldInput, map[string]*multipart.FileHeader, error) {
	files := map[string]*multipart.FileHeader{}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for name, headers := range form.File {
			if len(headers) > 0 {
				files[name] = headers[0]
			}
		}
		var inputs []services.FieldInput
		raw := c.FormValue("formFields")
		if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
			return nil, nil, err
		}
		return inputs, files, nil
	}

	var body struct {
		FormFields []services.FieldInput `json:"formFields"`
	}
	if err := c.BodyParser(&body); err != nil {
		return nil, nil, err
	}
	return body.FormFields, files, nil
}

// Register (POST /events/:id/register) submits a registration.
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid event id")
	}

	inputs, files, err := parseFormFields(c)
	if err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid form data")
	}

	_, svcErr := h.registrationService.Register(c.UserContext(), services.RegisterInput{
		EventID:       uint(eventID),
		Inputs:        inputs,
		Files:         files,
		Authenticated: middleware.CurrentUser(c),
	})
	if svcErr != nil {
		return handlers.ServiceError(c, svcErr)
	}
	return handlers.SuccessMessage(c, "You have successfully registered")
}
