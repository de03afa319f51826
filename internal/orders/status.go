package orders

import (
	"fmt"
	"time"

	"github.com/example/kirana/internal/models"
)

// OverdueAfter is the service-level threshold after which a live order
// counts as stalled. Strictly exceeded, not reached.
const OverdueAfter = 48 * time.Hour

// transitions is the allowed adjacency between statuses. Delivered and
// cancelled are terminal and have no outgoing edges.
var transitions = map[string][]string{
	models.StatusPending:    {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered, models.StatusCancelled},
	models.StatusDelivered:  nil,
	models.StatusCancelled:  nil,
}

// InvalidTransitionError reports a status change outside the allowed graph.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order transition %s -> %s", e.From, e.To)
}

// CanTransition reports whether from -> to is an allowed edge. A target
// equal to the current status is always allowed as a no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the order to target and refreshes UpdatedAt. A
// same-status target is a no-op that still refreshes UpdatedAt. The caller
// persists the modified record through the store.
func Transition(order *models.Order, target string, now time.Time) error {
	if !models.IsOrderStatus(target) || !CanTransition(order.Status, target) {
		return &InvalidTransitionError{From: order.Status, To: target}
	}

	order.Status = target
	order.UpdatedAt = now
	return nil
}

// IsOverdue reports whether an order has stalled: a non-terminal status
// whose last update is strictly older than OverdueAfter. Delivered and
// cancelled orders are never overdue.
func IsOverdue(status string, updatedAt, now time.Time) bool {
	switch status {
	case models.StatusPending, models.StatusProcessing, models.StatusShipped:
		return now.Sub(updatedAt) > OverdueAfter
	default:
		return false
	}
}
