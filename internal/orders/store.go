package orders

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/kirana/internal/models"
)

var (
	// ErrNotFound means no order exists with the given id.
	ErrNotFound = errors.New("order not found")
	// ErrConflict means the stored record advanced past the caller's copy.
	ErrConflict = errors.New("order was modified by another session")
)

// Query narrows and orders a listing at the store level.
type Query struct {
	UserID    *uuid.UUID
	SortField string // one of the Sort* columns; empty means createdAt
	SortDesc  bool
}

// Store persists orders. Orders are an audit trail once created: there is
// no delete operation.
type Store interface {
	Create(order *models.Order) error
	Get(id uuid.UUID) (*models.Order, error)
	Update(order *models.Order, expectedUpdatedAt time.Time) error
	List(q Query) ([]models.Order, error)
}

// GormStore is the postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore constructs GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create persists a new order with its items. The id and both timestamps
// are assigned by the store.
func (s *GormStore) Create(order *models.Order) error {
	return s.db.Create(order).Error
}

// Get loads an order with its items.
func (s *GormStore) Get(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Update overwrites the whole record, guarded by the updated_at value the
// caller read. A stored record that has advanced past expectedUpdatedAt
// fails with ErrConflict and writes nothing. Items are immutable and are
// never rewritten here.
func (s *GormStore) Update(order *models.Order, expectedUpdatedAt time.Time) error {
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND updated_at = ?", order.ID, expectedUpdatedAt).
		Select("*").
		Omit("id", "created_at", "Items").
		Updates(order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(order.ID); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// List returns orders matching the query, items preloaded.
func (s *GormStore) List(q Query) ([]models.Order, error) {
	query := s.db.Model(&models.Order{}).Preload("Items")

	if q.UserID != nil {
		query = query.Where("user_id = ?", *q.UserID)
	}

	column := sortColumn(q.SortField)
	direction := "asc"
	if q.SortDesc {
		direction = "desc"
	}

	var list []models.Order
	if err := query.Order(column + " " + direction).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// sortColumn whitelists sortable fields; anything else falls back to
// creation time.
func sortColumn(field string) string {
	switch field {
	case SortByCustomer:
		return "customer_name"
	case SortByTotal:
		return "total_amount"
	case SortByStatus:
		return "status"
	case SortByID:
		return "id"
	default:
		return "created_at"
	}
}
