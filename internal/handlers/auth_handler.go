package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"toyshop/internal/models"
	"toyshop/internal/services"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
// Both routes are public.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration and issues a token on
// success, as if the user had logged in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var cmd models.RegisterCommand
	if err := c.BodyParser(&cmd); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	token, err := h.authService.Register(c.UserContext(), cmd)
	if err != nil {
		var verr *services.ValidationError
		var ierr *services.IdentityError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		case errors.As(err, &ierr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Registration failed",
				"errors":  ierr.Messages,
			})
		default:
			log.Printf("Error registering user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not register user",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(token)
}

// HandleLogin handles user login and issues a JWT token. A locked-out user
// is rejected regardless of credential correctness.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var cmd models.LoginCommand
	if err := c.BodyParser(&cmd); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	token, err := h.authService.Login(c.UserContext(), cmd)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		case errors.Is(err, services.ErrUserBlocked):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User was blocked",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User or Password invalid",
			})
		default:
			log.Printf("Error during login for %s: %v", cmd.Email, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Authentication failed",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(token)
}
