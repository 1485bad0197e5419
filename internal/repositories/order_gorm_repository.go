package repositories

import (
	"errors"
	"fmt"

	"drukmart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists an order together with its items in a single transaction.
// The shipping address ownership check runs inside the same transaction, so
// an address deleted or reassigned mid-request cannot slip through. Any
// failure rolls the whole order back; a partial order is never observable.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var address models.ShippingAddress
		err := tx.First(&address, "id = ? AND user_id = ?", order.ShippingAddressID, order.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to verify shipping address: %w", err)
		}

		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		for i := range order.Items {
			if order.Items[i].ID == "" {
				order.Items[i].ID = uuid.New().String()
			}
			order.Items[i].OrderID = order.ID
		}

		// Creating the order also inserts the associated items; a failure
		// on any item aborts the transaction.
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		order.ShippingAddress = address
		return nil
	})
}

// GetAllByUser retrieves a user's orders, newest first, with items and
// shipping address attached.
func (r *GORMOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("ShippingAddress").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByOrderNumber retrieves a single order by its order number.
func (r *GORMOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("ShippingAddress").
		First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderNumber, err)
	}
	return &order, nil
}

// Cancel moves a pending order to cancelled. The status check and the
// update run in one transaction; orders in any other state return
// ErrOrderNotPending.
func (r *GORMOrderRepository) Cancel(id string, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").Preload("ShippingAddress").
			First(&order, "id = ? AND user_id = ?", id, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load order %s: %w", id, err)
		}

		if order.Status != models.OrderStatusPending {
			return ErrOrderNotPending
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel order %s: %w", id, err)
		}
		order.Status = models.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
