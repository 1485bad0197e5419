package repositories

import (
	"sync"
	"time"

	"drukmart/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Unlike the GORM repository it has no address table to check ownership
// against, so Create accepts any shipping address reference.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order with its items.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetAllByUser returns the user's orders.
func (r *MockOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// GetByOrderNumber returns an order by its order number.
func (r *MockOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			o := order
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// Cancel moves a pending order to cancelled.
func (r *MockOrderRepository) Cancel(id string, userID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || order.UserID != userID {
		return nil, ErrNotFound
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}
