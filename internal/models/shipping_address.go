package models

import "time"

// ShippingAddress is a delivery destination owned by a single user.
// At most one address per user has IsDefault set; the repository keeps
// that invariant when addresses are created, updated or deleted.
type ShippingAddress struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID       string    `json:"-" gorm:"index;type:varchar(36)"` // Hidden, like the user_id column upstream
	FullName     string    `json:"full_name" validate:"required,max=255"`
	Email        string    `json:"email" validate:"required,email,max=255"`
	Phone        string    `json:"phone" validate:"required,max=20"`
	AddressLine1 string    `json:"address_line1" validate:"required,max=255"`
	AddressLine2 string    `json:"address_line2" validate:"omitempty,max=255"`
	City         string    `json:"city" validate:"required,max=100"`
	State        string    `json:"state" validate:"required,max=100"`
	PostalCode   string    `json:"postal_code" validate:"omitempty,max=20"`
	Country      string    `json:"country" validate:"required,max=100"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
