package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math"

	"drukmart/internal/models"
	"drukmart/internal/pricing"
	"drukmart/internal/repositories"
	"drukmart/pkg/rabbitmq"
)

// ErrValidation marks a rejection caused by the request itself rather than
// by persistence. Handlers map it to a 422.
var ErrValidation = errors.New("validation failed")

// CreateOrderItemRequest is one line of an incoming order. Prices are
// snapshots the client computed at add-to-cart time.
type CreateOrderItemRequest struct {
	ProductID      string  `json:"product_id" validate:"required"`
	ProductName    string  `json:"product_name" validate:"required"`
	UnitPrice      float64 `json:"unit_price" validate:"gte=0"`
	Quantity       int     `json:"quantity" validate:"required,min=1"`
	TotalPrice     float64 `json:"total_price" validate:"gte=0"`
	Color          string  `json:"color"`
	Size           string  `json:"size"`
	ProductOptions string  `json:"product_options" validate:"omitempty,json"`
}

// CreateOrderRequest is the payload for placing an order. Status is
// constrained to pending: orders cannot be born in any other state.
type CreateOrderRequest struct {
	ShippingAddressID string                   `json:"shipping_address_id" validate:"required"`
	PaymentMethod     string                   `json:"payment_method" validate:"required,oneof=cod"`
	PaymentStatus     string                   `json:"payment_status" validate:"required,oneof=pending paid"`
	TotalAmount       float64                  `json:"total_amount" validate:"gte=0"`
	ShippingCost      float64                  `json:"shipping_cost" validate:"gte=0"`
	TaxAmount         float64                  `json:"tax_amount" validate:"gte=0"`
	Status            string                   `json:"status" validate:"required,oneof=pending"`
	Notes             string                   `json:"notes"`
	Items             []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // May be nil when messaging is disabled
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetOrdersForUser retrieves the user's orders, newest first.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllByUser(userID)
}

// GetOrderByNumber retrieves one order by its order number, scoped to the
// owning user.
func (s *OrderService) GetOrderByNumber(userID, orderNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		// Foreign orders are indistinguishable from missing ones
		return nil, repositories.ErrNotFound
	}
	return order, nil
}

// CreateOrder validates the request and persists the order with its items
// atomically. The stored totals are the client's: checkout is never blocked
// over a disagreement, but the server recomputes them and logs any mismatch.
func (s *OrderService) CreateOrder(userID string, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var itemSum float64
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d has quantity %d", ErrValidation, i, item.Quantity)
		}
		// total_price = unit_price * quantity is fixed at creation time
		expected := item.UnitPrice * float64(item.Quantity)
		if math.Abs(expected-item.TotalPrice) > 0.01 {
			return nil, fmt.Errorf("%w: item %d total %.2f does not match unit price %.2f x %d",
				ErrValidation, i, item.TotalPrice, item.UnitPrice, item.Quantity)
		}
		itemSum += item.TotalPrice

		items = append(items, models.OrderItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
			TotalPrice:     item.TotalPrice,
			Color:          item.Color,
			Size:           item.Size,
			ProductOptions: item.ProductOptions,
		})
	}

	// Non-blocking integrity check on the client-computed grand total.
	recomputed := pricing.OrderTotal(itemSum, req.ShippingCost, req.TaxAmount)
	if math.Abs(recomputed-req.TotalAmount) > 0.01 {
		log.Printf("Order total mismatch for user %s: submitted %.2f, recomputed %.2f",
			userID, req.TotalAmount, recomputed)
	}

	order := &models.Order{
		UserID:            userID,
		ShippingAddressID: req.ShippingAddressID,
		OrderNumber:       generateOrderNumber(),
		TotalAmount:       req.TotalAmount,
		ShippingCost:      req.ShippingCost,
		TaxAmount:         req.TaxAmount,
		Status:            models.OrderStatusPending,
		PaymentMethod:     req.PaymentMethod,
		PaymentStatus:     models.PaymentStatus(req.PaymentStatus),
		Notes:             req.Notes,
		Items:             items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishOrderEvent("order.created", order)
	return order, nil
}

// CancelOrder cancels one of the user's orders. Only pending orders can be
// cancelled; the repository enforces the guard transactionally.
func (s *OrderService) CancelOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.Cancel(orderID, userID)
	if err != nil {
		return nil, err
	}
	s.publishOrderEvent("order.cancelled", order)
	return order, nil
}

func (s *OrderService) publishOrderEvent(event string, order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping event publication.")
		return
	}
	err := s.mqClient.PublishOrderEvent(rabbitmq.OrderEvent{
		Event:       event,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
	})
	if err != nil {
		// Event delivery is best effort; the order is already durable
		log.Printf("Warning: failed to publish %s for order %s: %v", event, order.OrderNumber, err)
	}
}

const orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateOrderNumber builds a human-readable order number: a short prefix
// plus a 10-character random token. Uniqueness is backed by the database's
// unique index; a collision surfaces as a creation error.
func generateOrderNumber() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is not survivable in any useful way
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return "ORD-" + string(buf)
}
