package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/services"
)

func (handler *Handler) UpsertRecord(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	var input recordInput
	if err := handler.parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}
	record, err := handler.ledger.UpsertRecord(c.UserContext(), user.ID, c.Params("date"), input.fields())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "record saved", "record": record})
}

func (handler *Handler) ListRecords(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	window, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}
	records, err := handler.ledger.ListRecords(c.UserContext(), user.ID, window)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) GetRecord(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	record, err := handler.ledger.GetRecord(c.UserContext(), user.ID, c.Params("date"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) ResetRecord(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	if err := handler.ledger.ResetRecord(c.UserContext(), user.ID, c.Params("date")); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "record reset"})
}

func (handler *Handler) DeleteRecordByID(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	recordID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || recordID == 0 {
		return apiError(c, fiber.StatusBadRequest, codeValidationFailed, "id must be a positive integer")
	}
	if err := handler.ledger.DeleteRecordByID(c.UserContext(), user.ID, uint(recordID)); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "record deleted"})
}
