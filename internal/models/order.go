package models

import (
	"github.com/google/uuid"
)

// Order statuses. Transitions between them are owned by the orders package;
// nothing else should write Status directly.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid status value.
var OrderStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsOrderStatus reports whether s is a known status value.
func IsOrderStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ShippingAddress is embedded in Order and mirrored onto User as the
// last used address at checkout.
type ShippingAddress struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

type Order struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:uuid;index" json:"userId"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	Items           []OrderItem     `json:"items,omitempty"`
	Subtotal        float64         `json:"subtotal"`
	ShippingCharges float64         `json:"shippingCharges"`
	TotalAmount     float64         `json:"totalAmount"`
	Profit          float64         `json:"profit"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `gorm:"index" json:"status"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
}

// OrderItem snapshots the product at checkout time; it is not a live
// reference into the catalog and never changes after the order is created.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `gorm:"type:uuid;index" json:"orderId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"` // decimal string, e.g. "249.00"
	Weight      string    `json:"weight"`
}
