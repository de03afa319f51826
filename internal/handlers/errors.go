package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/kirana/internal/expenses"
	"github.com/example/kirana/internal/orders"
)

// mapDomainError translates domain errors to HTTP errors at the edge.
// Anything unrecognized bubbles up as a 500 through fiber's error handler.
func mapDomainError(err error) error {
	var validation *expenses.ValidationError
	var transition *orders.InvalidTransitionError

	switch {
	case errors.As(err, &validation):
		return fiber.NewError(fiber.StatusBadRequest, validation.Error())
	case errors.As(err, &transition):
		return fiber.NewError(fiber.StatusUnprocessableEntity, transition.Error())
	case errors.Is(err, orders.ErrNotFound), errors.Is(err, expenses.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, orders.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}
