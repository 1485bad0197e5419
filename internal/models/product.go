package models

import "gorm.io/gorm"

// Product represents a product in the store catalog.
// Pricing fields mirror the upstream catalog: Price is in the source
// currency, TaxRate is a percentage, LogisticRate is charged per weight unit.
type Product struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string  `json:"name" validate:"required,min=3,max=100"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	Brand        string  `json:"brand" validate:"omitempty,max=100"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	TaxRate      float64 `json:"tax_rate" validate:"gte=0"`
	LogisticRate float64 `json:"logistic_rate" validate:"gte=0"`
	UnitWeight   float64 `json:"unit_weight" validate:"gte=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
