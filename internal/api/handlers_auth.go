package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/errs"
	"go.uber.org/zap"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := handler.parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}

	userID, err := handler.auth.Register(c.UserContext(), input.Handle, input.Secret, input.DisplayName)
	if err != nil {
		return handler.respondError(c, err)
	}

	handler.logger.Info("user registered", zap.Uint("user_id", userID), zap.String("request_id", requestID(c)))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"userId": userID})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	if blocked, retryAfter := handler.loginLimiter.blocked(limiterKey, handler.now()); blocked {
		seconds := int(retryAfter.Seconds()) + 1
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
		return apiError(c, fiber.StatusTooManyRequests, codeRateLimited, "too many login attempts")
	}

	var input loginInput
	if err := handler.parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}

	user, err := handler.auth.Authenticate(c.UserContext(), input.Handle, input.Secret)
	if errors.Is(err, errs.ErrInvalidCredentials) {
		handler.loginLimiter.recordFailure(limiterKey, handler.now())
	}
	if err != nil {
		return handler.respondError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	token, err := handler.buildToken(&user)
	if err != nil {
		return handler.respondError(c, err)
	}
	handler.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"userId":             user.ID,
		"handle":             user.Handle,
		"displayName":        user.DisplayName,
		"mustChangePassword": user.MustChangePassword,
		"token":              token,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangeSecret(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}

	var input changeSecretInput
	if err := handler.parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}
	if err := handler.auth.ChangeSecret(c.UserContext(), user.ID, input.CurrentSecret, input.NewSecret); err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
