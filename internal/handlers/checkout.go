package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/kirana/internal/middleware"
	"github.com/example/kirana/internal/models"
	"github.com/example/kirana/internal/orders"
	"github.com/example/kirana/internal/pricing"
	"github.com/example/kirana/internal/services"
)

// CheckoutHandler turns a cart into a priced pending order.
type CheckoutHandler struct {
	db       *gorm.DB
	store    orders.Store
	telegram *services.TelegramService
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(db *gorm.DB, store orders.Store, telegram *services.TelegramService) *CheckoutHandler {
	return &CheckoutHandler{db: db, store: store, telegram: telegram}
}

type checkoutItemRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Weight      string `json:"weight"`
}

type checkoutRequest struct {
	Items           []checkoutItemRequest  `json:"items"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// Checkout prices the cart, snapshots the customer contact, persists the
// pending order, and mirrors the shipping address onto the profile.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}
	if req.PaymentMethod == "" {
		return fiber.NewError(fiber.StatusBadRequest, "payment method is required")
	}
	if req.ShippingAddress.AddressLine1 == "" {
		return fiber.NewError(fiber.StatusBadRequest, "address line 1 is required")
	}
	if len(req.ShippingAddress.Pincode) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "pincode must be at least 6 characters")
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item quantity must be positive")
		}
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil || price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid unit price")
		}

		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, models.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Weight:      it.Weight,
		})
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	quote := pricing.Price(subtotal.InexactFloat64())

	order := models.Order{
		UserID:          userID,
		CustomerName:    user.Name,
		CustomerEmail:   user.Email,
		CustomerPhone:   user.Phone,
		Items:           items,
		Subtotal:        subtotal.InexactFloat64(),
		ShippingCharges: quote.ShippingCharges,
		TotalAmount:     quote.TotalAmount,
		Profit:          quote.Profit,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPending,
		ShippingAddress: req.ShippingAddress,
	}

	if err := h.store.Create(&order); err != nil {
		return err
	}

	// Remember the address for the next checkout. Losing this write only
	// costs the customer a re-type, so the order stays committed.
	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"shipping_address_line1": req.ShippingAddress.AddressLine1,
		"shipping_address_line2": req.ShippingAddress.AddressLine2,
		"shipping_city":          req.ShippingAddress.City,
		"shipping_state":         req.ShippingAddress.State,
		"shipping_pincode":       req.ShippingAddress.Pincode,
	}).Error; err != nil {
		log.Printf("[Checkout] failed to save last used address for user %s: %v", userID, err)
	}

	if h.telegram != nil {
		go h.notifyNewOrder(order)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":              order.ID,
			"status":          order.Status,
			"subtotal":        order.Subtotal,
			"shippingCharges": order.ShippingCharges,
			"totalAmount":     order.TotalAmount,
			"createdAt":       order.CreatedAt,
		},
	})
}

func (h *CheckoutHandler) notifyNewOrder(order models.Order) {
	items := make([]services.OrderItemNotification, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, services.OrderItemNotification{
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	err := h.telegram.NotifyNewOrder(services.OrderNotification{
		OrderID:       order.ID.String(),
		Items:         items,
		TotalAmount:   order.TotalAmount,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
	})
	if err != nil {
		log.Printf("[Checkout] telegram notification failed for order %s: %v", order.ID, err)
	}
}
