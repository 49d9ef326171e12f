package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/models"
)

const (
	authCookieName = "healthtrack_auth"
	contextUserKey = "current_user"
	requestIDKey   = "request_id"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(requestIDKey).(string)
	return value
}
