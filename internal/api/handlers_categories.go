package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/services"
)

func (handler *Handler) RecordCategory(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var input categoryInput
	if err := handler.parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}
	entry, err := handler.ledger.RecordCategory(c.UserContext(), user.ID, c.Params("date"), c.Params("category"), *input.Value, input.Notes)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entry saved", "entry": entry})
}

func (handler *Handler) ListCategory(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	window, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}
	entries, err := handler.ledger.ListCategory(c.UserContext(), user.ID, c.Params("category"), window)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) ResetCategory(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	if err := handler.ledger.ResetCategory(c.UserContext(), user.ID, c.Params("date"), c.Params("category")); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entry reset"})
}

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	dashboard, err := handler.dashboard.Dashboard(c.UserContext(), user.ID, handler.now().In(handler.location))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(dashboard)
}
