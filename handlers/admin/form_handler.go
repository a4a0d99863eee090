// Package admin holds the authenticated back-office handlers.
package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"attendee.link/handlers"
	"attendee.link/pkg/queryparams"
	"attendee.link/services"
)

// FormHandler serves custom-form management.
type FormHandler struct {
	formService services.IFormService
}

func NewFormHandler() *FormHandler {
	return &FormHandler{formService: services.NewFormService()}
}

func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Create (POST /admin/forms)
func (h *FormHandler) Create(c *fiber.Ctx) error {
	var input services.CreateFormInput
	if err := c.BodyParser(&input); err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	form, err := h.formService.CreateForm(c.UserContext(), input)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, form)
}

// Update (PATCH /admin/forms/:id)
func (h *FormHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid form id")
	}
	var input services.UpdateFormInput
	if err := c.BodyParser(&input); err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	form, err := h.formService.UpdateForm(c.UserContext(), id, input)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, form)
}

// Delete (DELETE /admin/forms/:id)
func (h *FormHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid form id")
	}
	if err := h.formService.DeleteForm(c.UserContext(), id); err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.SuccessMessage(c, "form deleted")
}

// Details (GET /admin/forms/:id)
func (h *FormHandler) Details(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid form id")
	}
	form, err := h.formService.GetFormByID(c.UserContext(), id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, form)
}

// Search (GET /admin/forms)
func (h *FormHandler) Search(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	result, err := h.formService.SearchForms(c.UserContext(), params)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, result)
}

// EventForms (GET /admin/events/:id/forms)
func (h *FormHandler) EventForms(c *fiber.Ctx) error {
	eventID, ok := parseID(c, "id")
	if !ok {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid event id")
	}
	forms, err := h.formService.GetEventForms(c.UserContext(), eventID)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, fiber.Map{"forms": forms})
}

// Responses (GET /admin/forms/:id/responses)
func (h *FormHandler) Responses(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return handlers.Fail(c, fiber.StatusBadRequest, "invalid form id")
	}
	records, err := h.formService.GetFormResponses(c.UserContext(), id)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, fiber.Map{"responses": records})
}
