package repositories

import (
	"errors"
	"fmt"

	"drukmart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
//
// The default-flip (clear every other default, then set the new one) always
// runs inside a single transaction. Read-committed or stricter isolation is
// required so two concurrent flips for the same user cannot leave two
// defaults behind.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// ListByUser retrieves all of a user's addresses.
func (r *GORMAddressRepository) ListByUser(userID string) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	if err := r.db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses for user %s: %w", userID, err)
	}
	return addresses, nil
}

// GetByID retrieves one address owned by the user.
func (r *GORMAddressRepository) GetByID(userID string, id string) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	if err := r.db.First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get address %s: %w", id, err)
	}
	return &address, nil
}

// Create inserts a new address. The user's first address always becomes the
// default; a later address becomes the default only when requested, clearing
// the flag on every other address in the same transaction.
func (r *GORMAddressRepository) Create(address *models.ShippingAddress) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ShippingAddress{}).
			Where("user_id = ?", address.UserID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count addresses: %w", err)
		}

		if count == 0 || address.IsDefault {
			if err := tx.Model(&models.ShippingAddress{}).
				Where("user_id = ?", address.UserID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default addresses: %w", err)
			}
			address.IsDefault = true
		}

		if address.ID == "" {
			address.ID = uuid.New().String()
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
}

// Update saves changes to an address owned by the user. Setting the default
// flag clears it on every other address first, in the same transaction.
func (r *GORMAddressRepository) Update(address *models.ShippingAddress) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ShippingAddress
		err := tx.First(&existing, "id = ? AND user_id = ?", address.ID, address.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load address %s: %w", address.ID, err)
		}

		if address.IsDefault && !existing.IsDefault {
			if err := tx.Model(&models.ShippingAddress{}).
				Where("user_id = ? AND id <> ?", address.UserID, address.ID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default addresses: %w", err)
			}
		}
		// Demoting the current default directly is not allowed; the default
		// moves only when another address takes it over.
		if existing.IsDefault {
			address.IsDefault = true
		}

		address.CreatedAt = existing.CreatedAt
		if err := tx.Save(address).Error; err != nil {
			return fmt.Errorf("failed to update address %s: %w", address.ID, err)
		}
		return nil
	})
}

// Delete removes an address owned by the user. When the deleted address was
// the default and other addresses remain, one of them is promoted so the
// user never ends up with addresses but no default.
func (r *GORMAddressRepository) Delete(userID string, id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var address models.ShippingAddress
		err := tx.First(&address, "id = ? AND user_id = ?", id, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load address %s: %w", id, err)
		}

		if err := tx.Delete(&address).Error; err != nil {
			return fmt.Errorf("failed to delete address %s: %w", id, err)
		}

		if address.IsDefault {
			var successor models.ShippingAddress
			err := tx.First(&successor, "user_id = ?", userID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // Last address gone, nothing to promote
				}
				return fmt.Errorf("failed to find successor default: %w", err)
			}
			if err := tx.Model(&successor).Update("is_default", true).Error; err != nil {
				return fmt.Errorf("failed to promote successor default: %w", err)
			}
		}
		return nil
	})
}
