package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kirana/internal/middleware"
	"github.com/example/kirana/internal/models"
	"github.com/example/kirana/internal/orders"
	"github.com/example/kirana/internal/utils"
)

// OrderHandler serves the customer's own orders.
type OrderHandler struct {
	store orders.Store
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(store orders.Store) *OrderHandler {
	return &OrderHandler{store: store}
}

// ListOrders returns orders for the authenticated user, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	list, err := h.store.List(orders.Query{UserID: &userID, SortDesc: true})
	if err != nil {
		return err
	}

	if status := c.Query("status"); status != "" && status != "all" {
		filtered := make([]models.Order, 0, len(list))
		for _, o := range list {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}

	pg := utils.ParsePagination(c)
	total := len(list)
	page := utils.PageSlice(list, pg)

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

// GetOrder returns a single order owned by the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.store.Get(id)
	if err != nil {
		return mapDomainError(err)
	}
	if order.UserID != userID {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
