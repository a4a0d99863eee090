// Package middleware carries the fiber middlewares shared across route
// groups.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"attendee.link/models"
	"attendee.link/services"
)

// CurrentUserKey is the locals key the authenticated user is stored under.
const CurrentUserKey = "currentUser"

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("token")
}

// OptionalAuth resolves the requester when a valid token is present and
// continues anonymously otherwise.
func OptionalAuth(authService services.IAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if user, err := authService.UserFromToken(c.UserContext(), token); err == nil {
				c.Locals(CurrentUserKey, user)
			}
		}
		return c.Next()
	}
}

// RequireAuth rejects requests without a valid token.
func RequireAuth(authService services.IAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "fail", "message": "authentication required",
			})
		}
		user, err := authService.UserFromToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "fail", "message": "invalid or expired token",
			})
		}
		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the resolved user from locals, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(CurrentUserKey).(*models.User); ok {
		return user
	}
	return nil
}
