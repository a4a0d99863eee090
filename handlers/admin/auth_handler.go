package admin

import (
	"github.com/gofiber/fiber/v2"

	"attendee.link/handlers"
	"attendee.link/services"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	authService services.IAuthService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{authService: services.NewAuthService()}
}

// Login (POST /auth/login)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" || body.Password == "" {
		return handlers.Fail(c, fiber.StatusBadRequest, "email and password are required")
	}

	token, user, err := h.authService.Login(c.UserContext(), body.Email, body.Password)
	if err != nil {
		return handlers.ServiceError(c, err)
	}
	return handlers.Success(c, fiber.Map{
		"token": token,
		"user":  user,
	})
}
