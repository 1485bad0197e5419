package services_test

import (
	"strings"
	"testing"

	"drukmart/internal/repositories"
	"drukmart/internal/services"

	"github.com/stretchr/testify/assert"
)

func validOrderRequest() services.CreateOrderRequest {
	return services.CreateOrderRequest{
		ShippingAddressID: "addr-1",
		PaymentMethod:     "cod",
		PaymentStatus:     "pending",
		TotalAmount:       353,
		ShippingCost:      25,
		TaxAmount:         0,
		Status:            "pending",
		Items: []services.CreateOrderItemRequest{
			{ProductID: "prod-1", ProductName: "Laptop", UnitPrice: 164, Quantity: 2, TotalPrice: 328},
		},
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order, err := service.CreateOrder("user-1", validOrderRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "pending", string(order.Status))

	// Order number: short prefix plus a 10-character random token
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(t, order.OrderNumber, 14)

	// Persisted and retrievable by number
	fetched, err := service.GetOrderByNumber("user-1", order.OrderNumber)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
}

func TestOrderService_CreateOrderRejectsEmptyItems(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	req := validOrderRequest()
	req.Items = nil
	_, err := service.CreateOrder("user-1", req)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestOrderService_CreateOrderRejectsBadItemTotal(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	// 164 * 2 is 328, not 400
	req := validOrderRequest()
	req.Items[0].TotalPrice = 400
	_, err := service.CreateOrder("user-1", req)
	assert.ErrorIs(t, err, services.ErrValidation)

	// No partial acceptance
	orders, err := service.GetOrdersForUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrderAcceptsMismatchedGrandTotal(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	// The client-computed grand total disagrees with the recomputation.
	// The mismatch is logged but checkout still completes, and the stored
	// total is the client's.
	req := validOrderRequest()
	req.TotalAmount = 999
	order, err := service.CreateOrder("user-1", req)
	assert.NoError(t, err)
	assert.Equal(t, 999.0, order.TotalAmount)
}

func TestOrderService_GetOrderByNumberScoped(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order, err := service.CreateOrder("user-1", validOrderRequest())
	assert.NoError(t, err)

	// Another user's lookup reads as not found
	_, err = service.GetOrderByNumber("user-2", order.OrderNumber)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderService_CancelOrder(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	order, err := service.CreateOrder("user-1", validOrderRequest())
	assert.NoError(t, err)

	cancelled, err := service.CancelOrder("user-1", order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", string(cancelled.Status))

	// Cancelling again fails: the order is no longer pending
	_, err = service.CancelOrder("user-1", order.ID)
	assert.ErrorIs(t, err, repositories.ErrOrderNotPending)
}
