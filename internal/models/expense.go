package models

import (
	"time"
)

// Expense categories shown in the ledger UI.
var ExpenseCategories = []string{
	"inventory",
	"packaging",
	"shipping",
	"marketing",
	"rent",
	"utilities",
	"salaries",
	"equipment",
	"other",
}

// IsExpenseCategory reports whether c is a known category label.
func IsExpenseCategory(c string) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is an operator-recorded cost. Date is the expense's effective
// date and is independent of CreatedAt/UpdatedAt.
type Expense struct {
	BaseModel
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Category      string    `gorm:"index" json:"category"`
	Description   string    `json:"description"`
	Date          time.Time `gorm:"index" json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	Vendor        string    `json:"vendor"`
}
