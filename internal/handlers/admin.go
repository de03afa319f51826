package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kirana/internal/analytics"
	"github.com/example/kirana/internal/expenses"
	"github.com/example/kirana/internal/models"
	"github.com/example/kirana/internal/orders"
	"github.com/example/kirana/internal/utils"
)

// AdminHandler serves the order table, status changes and the analytics
// endpoints behind the admin guard.
type AdminHandler struct {
	store  orders.Store
	ledger *expenses.Ledger
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(store orders.Store, ledger *expenses.Ledger) *AdminHandler {
	return &AdminHandler{store: store, ledger: ledger}
}

// ListAllOrders returns the filtered, sorted order table.
//
// Query params: search, status, overdue, sort, dir (asc|desc), page, limit.
// An overdue filter wins over search and status, matching the table's
// stalled-orders drill-down.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	list, err := h.store.List(orders.Query{SortDesc: true})
	if err != nil {
		return err
	}

	params := orders.Params{
		Search:        c.Query("search"),
		StatusFilter:  c.Query("status"),
		OverdueFilter: c.Query("overdue"),
		SortColumn:    c.Query("sort", orders.SortByDate),
		SortDesc:      c.Query("dir", "desc") != "asc",
	}
	if params.OverdueFilter != "" && !models.IsOrderStatus(params.OverdueFilter) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid overdue filter")
	}

	filtered := orders.Apply(list, params, time.Now())

	pg := utils.ParsePagination(c)
	total := len(filtered)
	page := utils.PageSlice(filtered, pg)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    page,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type updateStatusRequest struct {
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updatedAt"` // concurrency token from the row the admin saw
}

// UpdateOrderStatus moves an order through the state machine and persists
// the whole record. A stale concurrency token fails with 409 and writes
// nothing.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !models.IsOrderStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status")
	}

	order, err := h.store.Get(id)
	if err != nil {
		return mapDomainError(err)
	}

	expected := order.UpdatedAt
	if req.UpdatedAt != nil {
		expected = *req.UpdatedAt
	}

	if err := orders.Transition(order, req.Status, time.Now()); err != nil {
		return mapDomainError(err)
	}
	if err := h.store.Update(order, expected); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// DashboardStats returns the derived statistics snapshot. Orders and
// expenses are fetched as two concurrent reads joined before aggregation;
// the two lists are close in time but not guaranteed mutually consistent.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	now := time.Now()

	var (
		expenseSet []models.Expense
		expenseErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		expenseSet, expenseErr = h.ledger.List(expenses.Filter{}, now)
	}()

	orderSet, orderErr := h.store.List(orders.Query{})
	<-done

	if orderErr != nil {
		return orderErr
	}
	if expenseErr != nil {
		return expenseErr
	}

	snap := analytics.Summarize(orderSet, expenseSet, now)
	return c.JSON(fiber.Map{"success": true, "data": snap})
}

// RevenueChart returns a ranked revenue series, bucketed either by
// calendar period (?granularity=day|week|month|year) or by product
// (?by=product).
func (h *AdminHandler) RevenueChart(c *fiber.Ctx) error {
	orderSet, err := h.store.List(orders.Query{})
	if err != nil {
		return err
	}

	if c.Query("by") == "product" {
		return c.JSON(fiber.Map{"success": true, "data": analytics.RevenueByProduct(orderSet)})
	}

	granularity := c.Query("granularity", analytics.GranularityMonth)
	if !analytics.IsGranularity(granularity) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown granularity")
	}

	series := analytics.RevenueOverTime(orderSet, granularity, time.Now())
	return c.JSON(fiber.Map{"success": true, "data": series})
}
