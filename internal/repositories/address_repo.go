package repositories

import "drukmart/internal/models"

// AddressRepository defines the interface for shipping address data access.
// All operations are scoped to the owning user; acting on another user's
// address yields ErrNotFound.
//
// The repository maintains the default-address invariant: whenever a user
// has at least one address, exactly one of them is the default.
type AddressRepository interface {
	ListByUser(userID string) ([]models.ShippingAddress, error)
	GetByID(userID string, id string) (*models.ShippingAddress, error)
	Create(address *models.ShippingAddress) error
	Update(address *models.ShippingAddress) error
	Delete(userID string, id string) error
}
