// Package handlers holds the JSON envelope helpers shared by the admin and
// public handler packages.
package handlers

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"attendee.link/configs/configslog"
	"attendee.link/services"
)

// Success writes the success envelope.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// SuccessMessage writes the success envelope with a message instead of data.
func SuccessMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": message,
	})
}

// Fail writes the client-error envelope.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "fail",
		"message": message,
	})
}

// ServiceError maps a service error onto the HTTP envelope. Unrecognised
// errors become an opaque 500; the underlying message only leaks in
// development mode.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrFormEventNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrRegistrationNotFound),
		errors.Is(err, services.ErrNoRegistrationForm):
		return Fail(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrEventPrivate):
		return Fail(c, fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		return Fail(c, fiber.StatusUnauthorized, err.Error())
	}

	var formErr services.FormServiceError
	if errors.As(err, &formErr) {
		return Fail(c, fiber.StatusBadRequest, err.Error())
	}
	var registrationErr services.RegistrationServiceError
	if errors.As(err, &registrationErr) {
		return Fail(c, fiber.StatusBadRequest, err.Error())
	}
	var missingErr services.MissingRequiredFieldError
	if errors.As(err, &missingErr) {
		return Fail(c, fiber.StatusBadRequest, err.Error())
	}
	var valueErr services.InvalidFieldValueError
	if errors.As(err, &valueErr) {
		return Fail(c, fiber.StatusBadRequest, err.Error())
	}
	var uploadErr services.FileUploadError
	if errors.As(err, &uploadErr) {
		return Fail(c, fiber.StatusBadRequest, err.Error())
	}

	configslog.Log.Error("unhandled service error", zap.Error(err))
	message := "something went wrong"
	if os.Getenv("APP_ENV") == "development" {
		message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
