package handlers

import (
	"log"

	"drukmart/internal/cart"
	"drukmart/internal/catalog"
	"drukmart/internal/rates"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for per-user shopping carts. Carts are
// held in memory; they do not survive a restart.
type CartHandler struct {
	store    *cart.Store
	catalog  *catalog.Client
	rates    *rates.Provider
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store *cart.Store, catalogClient *catalog.Client, ratesProvider *rates.Provider) *CartHandler {
	return &CartHandler{
		store:    store,
		catalog:  catalogClient,
		rates:    ratesProvider,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

// cartResponse renders the cart with its total recomputed at the current
// exchange rate.
func (h *CartHandler) cartResponse(c *fiber.Ctx, userCart *cart.Cart) fiber.Map {
	rate := h.rates.Current(c.UserContext())
	return fiber.Map{
		"items":      userCart.Lines(),
		"item_count": userCart.ItemCount(),
		"total":      userCart.Total(rate),
	}
}

// HandleGetCart returns the authenticated user's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userCart := h.store.ForUser(currentUserID(c))
	return c.JSON(h.cartResponse(c, userCart))
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// HandleAddItem fetches the product from the upstream catalog and adds it
// to the cart, merging with an existing line of the same variant.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart item request body: %v", err)
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

	product, err := h.catalog.FetchProduct(c.UserContext(), req.ProductID)
	if err != nil {
		log.Printf("Error fetching product %s from catalog: %v", req.ProductID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Catalog is unavailable",
			"error":   err.Error(),
		})
	}

	line := cart.LineFromCatalog(product, req.Color, req.Size, req.Quantity)
	if len(line.Defaulted) > 0 {
		log.Printf("Product %s priced with defaulted fields %v", req.ProductID, line.Defaulted)
	}

	userCart := h.store.ForUser(currentUserID(c))
	lineID := userCart.Add(line)

	resp := h.cartResponse(c, userCart)
	resp["message"] = "Item added to cart"
	resp["line_id"] = lineID
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateItemRequest is the payload for changing a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// HandleUpdateItem sets the quantity on a cart line. Quantity zero keeps
// the line in the cart but prices it to nothing.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart item request body: %v", err)
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

	userCart := h.store.ForUser(currentUserID(c))
	if !userCart.UpdateQuantity(c.Params("id"), req.Quantity) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Cart item not found",
		})
	}

	resp := h.cartResponse(c, userCart)
	resp["message"] = "Cart item updated"
	return c.JSON(resp)
}

// HandleRemoveItem removes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userCart := h.store.ForUser(currentUserID(c))
	if !userCart.Remove(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Cart item not found",
		})
	}

	resp := h.cartResponse(c, userCart)
	resp["message"] = "Cart item removed"
	return c.JSON(resp)
}

// HandleClearCart empties the authenticated user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userCart := h.store.ForUser(currentUserID(c))
	userCart.Clear()
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
