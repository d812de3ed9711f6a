package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"toyshop/internal/models"
	"toyshop/internal/repositories"
	"toyshop/internal/services"
)

// ToyHandler handles HTTP requests for toys.
type ToyHandler struct {
	service *services.ToyService
}

// NewToyHandler creates a new ToyHandler.
func NewToyHandler(service *services.ToyService) *ToyHandler {
	return &ToyHandler{
		service: service,
	}
}

// RegisterRoutes registers the toy routes with the Fiber app. Every route
// requires a bearer token; DELETE additionally requires the delete policy.
func (h *ToyHandler) RegisterRoutes(router fiber.Router, authRequired, deletePolicy fiber.Handler) {
	toyRoutes := router.Group("/toy", authRequired)
	toyRoutes.Get("/", h.HandleGetToys)
	toyRoutes.Get("/:id", h.HandleGetToyByID)
	toyRoutes.Post("/", h.HandleCreateToy)
	toyRoutes.Put("/:id", h.HandleUpdateToy)
	toyRoutes.Delete("/:id", deletePolicy, h.HandleDeleteToy)
}

// HandleGetToys retrieves all toys.
func (h *ToyHandler) HandleGetToys(c *fiber.Ctx) error {
	toys, err := h.service.GetAllToys(c.UserContext())
	if err != nil {
		log.Printf("Error getting all toys: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve toys",
			"error":   err.Error(),
		})
	}
	return c.JSON(toys)
}

// HandleGetToyByID retrieves a single toy by its ID.
func (h *ToyHandler) HandleGetToyByID(c *fiber.Ctx) error {
	id := c.Params("id")
	toy, err := h.service.GetToyByID(c.UserContext(), id)
	if err != nil {
		return h.renderToyError(c, id, err)
	}
	return c.JSON(toy)
}

// HandleCreateToy creates a toy from the posted command. On success the
// created record is returned with a Location header pointing at it.
func (h *ToyHandler) HandleCreateToy(c *fiber.Ctx) error {
	var cmd models.ToyCommand
	if err := c.BodyParser(&cmd); err != nil {
		log.Printf("Error parsing create toy request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	toy, err := h.service.CreateToy(c.UserContext(), cmd)
	if err != nil {
		return h.renderToyError(c, "", err)
	}

	c.Location(fmt.Sprintf("/toy/%s", toy.ID))
	return c.Status(fiber.StatusCreated).JSON(toy)
}

// HandleUpdateToy replaces the toy at the path id with the posted command.
func (h *ToyHandler) HandleUpdateToy(c *fiber.Ctx) error {
	id := c.Params("id")

	var cmd models.ToyCommand
	if err := c.BodyParser(&cmd); err != nil {
		log.Printf("Error parsing update toy request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateToy(c.UserContext(), id, cmd); err != nil {
		return h.renderToyError(c, id, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteToy removes the toy at the path id.
func (h *ToyHandler) HandleDeleteToy(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteToy(c.UserContext(), id); err != nil {
		return h.renderToyError(c, id, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// renderToyError maps a service error to its response, once. Validation
// failures carry the whole field map; zero-rows-affected writes map to 400.
func (h *ToyHandler) renderToyError(c *fiber.Ctx, id string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Toy with ID %s not found", id),
		})
	case errors.Is(err, repositories.ErrNothingPersisted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	default:
		log.Printf("Toy operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"error":   err.Error(),
		})
	}
}
