package orders

import (
	"sort"
	"strings"
	"time"

	"github.com/example/kirana/internal/models"
)

// Sort columns accepted by Apply.
const (
	SortByID       = "id"
	SortByCustomer = "customerName"
	SortByDate     = "createdAt"
	SortByTotal    = "totalAmount"
	SortByStatus   = "status"
)

// Params narrows and orders the admin order table.
//
// OverdueFilter takes priority: when it names a status, Search and
// StatusFilter are ignored and the result is exactly the orders in that
// status which are overdue. Otherwise Search and StatusFilter combine
// with AND.
type Params struct {
	Search        string
	StatusFilter  string // empty or "all" passes everything
	OverdueFilter string // empty, or one of pending/processing/shipped
	SortColumn    string
	SortDesc      bool
}

// Sort captures the current table ordering.
type Sort struct {
	Column string
	Desc   bool
}

// NextSort returns the ordering after a column header click: the same
// column flips direction, a new column starts descending.
func NextSort(current Sort, column string) Sort {
	if current.Column == column {
		return Sort{Column: column, Desc: !current.Desc}
	}
	return Sort{Column: column, Desc: true}
}

// Apply filters and sorts a snapshot of the order set in memory.
func Apply(list []models.Order, p Params, now time.Time) []models.Order {
	out := make([]models.Order, 0, len(list))

	if p.OverdueFilter != "" {
		for _, o := range list {
			if o.Status == p.OverdueFilter && IsOverdue(o.Status, o.UpdatedAt, now) {
				out = append(out, o)
			}
		}
	} else {
		term := strings.ToLower(strings.TrimSpace(p.Search))
		status := strings.ToLower(strings.TrimSpace(p.StatusFilter))
		for _, o := range list {
			if term != "" && !matchesSearch(o, term) {
				continue
			}
			if status != "" && status != "all" && !strings.EqualFold(o.Status, status) {
				continue
			}
			out = append(out, o)
		}
	}

	sortOrders(out, p.SortColumn, p.SortDesc)
	return out
}

func matchesSearch(o models.Order, term string) bool {
	return strings.Contains(strings.ToLower(o.ID.String()), term) ||
		strings.Contains(strings.ToLower(o.CustomerName), term) ||
		strings.Contains(strings.ToLower(o.CustomerEmail), term) ||
		strings.Contains(strings.ToLower(o.CustomerPhone), term)
}

// sortOrders is stable: ties keep their prior relative order.
func sortOrders(list []models.Order, column string, desc bool) {
	var less func(a, b models.Order) bool

	switch column {
	case SortByID:
		less = func(a, b models.Order) bool { return a.ID.String() < b.ID.String() }
	case SortByCustomer:
		less = func(a, b models.Order) bool {
			return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
		}
	case SortByTotal:
		less = func(a, b models.Order) bool { return a.TotalAmount < b.TotalAmount }
	case SortByStatus:
		less = func(a, b models.Order) bool {
			return strings.ToLower(a.Status) < strings.ToLower(b.Status)
		}
	case SortByDate:
		less = func(a, b models.Order) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}

	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}
