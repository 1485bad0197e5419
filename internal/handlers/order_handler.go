package handlers

import (
	"errors"
	"log"

	"drukmart/internal/repositories"
	"drukmart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
// All routes assume the JWT middleware has set user_id.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:orderNumber", h.HandleGetOrderByNumber)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
}

// HandleGetOrders retrieves the authenticated user's orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID := currentUserID(c)
	orders, err := h.service.GetOrdersForUser(userID)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// HandleGetOrderByNumber retrieves a single order by its order number.
// Orders belonging to other users are indistinguishable from missing ones.
func (h *OrderHandler) HandleGetOrderByNumber(c *fiber.Ctx) error {
	userID := currentUserID(c)
	orderNumber := c.Params("orderNumber")
	order, err := h.service.GetOrderByNumber(userID, orderNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", orderNumber, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"order": order})
}

// HandleCreateOrder places a new order for the authenticated user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req services.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
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

	order, err := h.service.CreateOrder(userID, req)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Order rejected",
				"error":   err.Error(),
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Shipping address not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// HandleCancelOrder cancels a pending order owned by the authenticated user.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	userID := currentUserID(c)
	orderID := c.Params("id")

	order, err := h.service.CancelOrder(userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, repositories.ErrOrderNotPending):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Only pending orders can be cancelled",
			})
		}
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel order",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order cancelled",
		"order":   order,
	})
}
