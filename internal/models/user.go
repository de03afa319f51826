package models

import (
	"github.com/lib/pq"
)

// User represents an authenticated customer. Name/email/phone are copied
// onto orders at checkout, so edits here never rewrite order history.
type User struct {
	BaseModel
	Name            string          `json:"name"`
	Email           string          `gorm:"uniqueIndex" json:"email"`
	Phone           string          `json:"phone"`
	PasswordHash    string          `json:"-"`
	IsAdmin         bool            `json:"isAdmin"`
	Favorites       pq.StringArray  `gorm:"type:text[]" json:"favorites"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	Orders          []Order         `json:"orders,omitempty"`
}
