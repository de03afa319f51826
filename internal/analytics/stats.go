package analytics

import (
	"time"

	"github.com/example/kirana/internal/models"
	"github.com/example/kirana/internal/orders"
)

// StatsSnapshot is the dashboard roll-up. It is recomputed on demand from
// the current order and expense sets and never persisted.
type StatsSnapshot struct {
	TotalRevenue  float64        `json:"totalRevenue"`
	TotalProfit   float64        `json:"totalProfit"`
	TotalShipping float64        `json:"totalShipping"`
	TotalExpenses float64        `json:"totalExpenses"`
	NetProfit     float64        `json:"netProfit"`
	StatusCounts  map[string]int `json:"statusCounts"`
	OverdueCounts map[string]int `json:"overdueCounts"`
	TodayOrders   int            `json:"todayOrders"`
	TodayRevenue  float64        `json:"todayRevenue"`
	TodayProfit   float64        `json:"todayProfit"`
	TodayShipping float64        `json:"todayShipping"`
}

// Summarize reduces the order set and expense set into a snapshot in one
// pass per input. Cancelled orders keep their status count but contribute
// nothing to the money sums.
func Summarize(orderSet []models.Order, expenseSet []models.Expense, now time.Time) StatsSnapshot {
	snap := StatsSnapshot{
		StatusCounts:  make(map[string]int),
		OverdueCounts: make(map[string]int),
	}

	for _, o := range orderSet {
		snap.StatusCounts[o.Status]++
		if orders.IsOverdue(o.Status, o.UpdatedAt, now) {
			snap.OverdueCounts[o.Status]++
		}

		cancelled := o.Status == models.StatusCancelled
		if !cancelled {
			snap.TotalRevenue += o.TotalAmount
			snap.TotalProfit += o.Profit
			snap.TotalShipping += o.ShippingCharges
		}

		if sameDay(o.CreatedAt, now) {
			snap.TodayOrders++
			if !cancelled {
				snap.TodayRevenue += o.TotalAmount
				snap.TodayProfit += o.Profit
				snap.TodayShipping += o.ShippingCharges
			}
		}
	}

	for _, e := range expenseSet {
		snap.TotalExpenses += e.Amount
	}

	snap.NetProfit = snap.TotalProfit - snap.TotalExpenses
	return snap
}

// sameDay compares calendar dates in now's location; time of day is
// ignored.
func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
