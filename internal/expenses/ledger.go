package expenses

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/kirana/internal/models"
)

// ErrNotFound means no expense exists with the given id.
var ErrNotFound = errors.New("expense not found")

// ValidationError names the first field that failed validation. Nothing
// is written when validation fails.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks an expense before any write, reporting the first
// failing field in form order.
func Validate(e *models.Expense) error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "amount must be greater than zero"}
	}
	if !models.IsExpenseCategory(e.Category) {
		return &ValidationError{Field: "category", Message: "unknown category"}
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	if strings.TrimSpace(e.PaymentMethod) == "" {
		return &ValidationError{Field: "paymentMethod", Message: "payment method is required"}
	}
	if strings.TrimSpace(e.Vendor) == "" {
		return &ValidationError{Field: "vendor", Message: "vendor is required"}
	}
	return nil
}

// Date range presets, computed relative to now at call time.
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

// Filter narrows a listing. Zero values pass everything.
type Filter struct {
	Search    string // free text over title, vendor and description
	Category  string
	DateRange string // one of the Range* presets
}

// ApplyFilter filters a snapshot of the expense set in memory.
func ApplyFilter(list []models.Expense, f Filter, now time.Time) []models.Expense {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Expense, 0, len(list))

	for _, e := range list {
		if term != "" && !matchesSearch(e, term) {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.DateRange != "" && !inRange(e.Date, f.DateRange, now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e models.Expense, term string) bool {
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Vendor), term) ||
		strings.Contains(strings.ToLower(e.Description), term)
}

func inRange(date time.Time, preset string, now time.Time) bool {
	switch preset {
	case RangeToday:
		d := date.In(now.Location())
		return d.Year() == now.Year() && d.YearDay() == now.YearDay()
	case RangeWeek:
		return !date.Before(now.AddDate(0, 0, -7))
	case RangeMonth:
		return !date.Before(now.AddDate(0, -1, 0))
	case RangeYear:
		return !date.Before(now.AddDate(-1, 0, 0))
	default:
		return true
	}
}

// Ledger is the postgres-backed expense store.
type Ledger struct {
	db *gorm.DB
}

// NewLedger constructs Ledger.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Create validates and persists a new expense.
func (l *Ledger) Create(e *models.Expense) error {
	if err := Validate(e); err != nil {
		return err
	}
	return l.db.Create(e).Error
}

// Update validates and overwrites an existing expense.
func (l *Ledger) Update(id uuid.UUID, e *models.Expense) error {
	if err := Validate(e); err != nil {
		return err
	}

	var existing models.Expense
	if err := l.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	return l.db.Model(&existing).Select("*").Omit("id", "created_at").Updates(e).Error
}

// Delete removes an expense. Operator confirmation happens upstream.
func (l *Ledger) Delete(id uuid.UUID) error {
	res := l.db.Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns expenses matching the filter, newest effective date first.
func (l *Ledger) List(f Filter, now time.Time) ([]models.Expense, error) {
	var list []models.Expense
	if err := l.db.Order("date desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return ApplyFilter(list, f, now), nil
}
