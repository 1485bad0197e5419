package repositories

import "drukmart/internal/models"

// OrderRepository defines the interface for order data access.
//
// Create must be atomic: the order, all of its items and the shipping
// address ownership check happen inside one transaction, and any failure
// leaves nothing behind. Cancel succeeds only while the order is still
// pending.
type OrderRepository interface {
	Create(order *models.Order) error
	GetAllByUser(userID string) ([]models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	Cancel(id string, userID string) (*models.Order, error)
}
