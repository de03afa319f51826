package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kirana/internal/expenses"
	"github.com/example/kirana/internal/models"
)

// ExpenseHandler manages the operator expense ledger.
type ExpenseHandler struct {
	ledger *expenses.Ledger
}

// NewExpenseHandler constructs ExpenseHandler.
func NewExpenseHandler(ledger *expenses.Ledger) *ExpenseHandler {
	return &ExpenseHandler{ledger: ledger}
}

type expenseRequest struct {
	Title         string    `json:"title"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	Vendor        string    `json:"vendor"`
}

func (r expenseRequest) toModel() models.Expense {
	return models.Expense{
		Title:         r.Title,
		Amount:        r.Amount,
		Category:      r.Category,
		Description:   r.Description,
		Date:          r.Date,
		PaymentMethod: r.PaymentMethod,
		Vendor:        r.Vendor,
	}
}

// ListExpenses returns expenses, optionally filtered by free text,
// category and a date-range preset.
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	filter := expenses.Filter{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		DateRange: c.Query("range"),
	}

	list, err := h.ledger.List(filter, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": list})
}

// CreateExpense validates and persists a new expense.
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	expense := req.toModel()
	if err := h.ledger.Create(&expense); err != nil {
		return mapDomainError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": expense})
}

// UpdateExpense validates and overwrites an existing expense.
func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	expense := req.toModel()
	if err := h.ledger.Update(id, &expense); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": expense})
}

// DeleteExpense removes an expense. The confirmation dialog lives in the
// admin UI, not here.
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.ledger.Delete(id); err != nil {
		return mapDomainError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListExpenseCategories returns the fixed category labels for the form.
func (h *ExpenseHandler) ListExpenseCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": models.ExpenseCategories})
}
