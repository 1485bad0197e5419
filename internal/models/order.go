package models

import "time"

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// PaymentStatus enumerates payment states for an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order represents a customer order. An order is created together with its
// items in one transaction and is never deleted; TotalAmount is the sum of
// the item totals plus ShippingCost and TaxAmount.
type Order struct {
	ID                string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string          `json:"user_id" gorm:"index;type:varchar(36)"`
	ShippingAddressID string          `json:"shipping_address_id" gorm:"type:varchar(36)"`
	OrderNumber       string          `json:"order_number" gorm:"uniqueIndex;type:varchar(20)"`
	TotalAmount       float64         `json:"total_amount"`
	ShippingCost      float64         `json:"shipping_cost"`
	TaxAmount         float64         `json:"tax_amount"`
	Status            OrderStatus     `json:"status" gorm:"type:varchar(20)"`
	PaymentMethod     string          `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentStatus     PaymentStatus   `json:"payment_status" gorm:"type:varchar(20)"`
	Notes             string          `json:"notes"`
	Items             []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress   ShippingAddress `json:"shipping_address" gorm:"foreignKey:ShippingAddressID"`
	ShippedAt         *time.Time      `json:"shipped_at"`
	DeliveredAt       *time.Time      `json:"delivered_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// OrderItem is a single line within an order. Name and unit price are
// snapshots taken at order time, so later catalog changes do not rewrite
// history. TotalPrice is UnitPrice multiplied by Quantity, fixed at creation.
type OrderItem struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID        string    `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPrice      float64   `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	TotalPrice     float64   `json:"total_price"`
	Color          string    `json:"color"`
	Size           string    `json:"size"`
	ProductOptions string    `json:"product_options" gorm:"type:text"` // Opaque JSON blob, not validated against the catalog
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
