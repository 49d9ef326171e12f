package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/errs"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	raw, err := requestToken(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	claims, err := handler.parseToken(raw)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}

	user, err := handler.auth.FindByID(c.UserContext(), claims.UserID)
	if errors.Is(err, errs.ErrNotFound) {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	if err != nil {
		return handler.respondError(c, err)
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

// SameUser lets a request through only when :userId names the caller.
func (handler *Handler) SameUser(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil || userID == 0 {
		return apiError(c, fiber.StatusBadRequest, codeValidationFailed, "userId must be a positive integer")
	}
	if uint(userID) != user.ID {
		return apiError(c, fiber.StatusForbidden, codeForbidden, "forbidden")
	}
	return c.Next()
}
