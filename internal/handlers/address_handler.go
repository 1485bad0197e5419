package handlers

import (
	"errors"
	"log"

	"drukmart/internal/repositories"
	"drukmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for shipping addresses.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the shipping address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/shipping-addresses")
	addressRoutes.Get("/", h.HandleListAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Get("/:id", h.HandleGetAddress)
	addressRoutes.Put("/:id", h.HandleUpdateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

// HandleListAddresses returns every address of the authenticated user.
func (h *AddressHandler) HandleListAddresses(c *fiber.Ctx) error {
	userID := currentUserID(c)
	addresses, err := h.service.ListAddresses(userID)
	if err != nil {
		log.Printf("Error listing addresses for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve addresses",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"addresses": addresses})
}

// HandleGetAddress returns one address owned by the authenticated user.
func (h *AddressHandler) HandleGetAddress(c *fiber.Ctx) error {
	userID := currentUserID(c)
	address, err := h.service.GetAddress(userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Address not found",
			})
		}
		log.Printf("Error getting address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve address",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"address": address})
}

// HandleCreateAddress creates a new address. The user's first address
// becomes the default regardless of what the request asked for.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req services.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	address, err := h.service.CreateAddress(userID, req)
	if err != nil {
		log.Printf("Error creating address for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create address",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Address created successfully",
		"address": address,
	})
}

// HandleUpdateAddress updates one of the user's addresses.
func (h *AddressHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req services.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing address request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	address, err := h.service.UpdateAddress(userID, c.Params("id"), req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Address not found",
			})
		}
		log.Printf("Error updating address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update address",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Address updated successfully",
		"address": address,
	})
}

// HandleDeleteAddress removes one of the user's addresses. Deleting the
// default promotes another address so the user keeps a default.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := h.service.DeleteAddress(userID, c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Address not found",
			})
		}
		log.Printf("Error deleting address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete address",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Address deleted successfully",
	})
}
