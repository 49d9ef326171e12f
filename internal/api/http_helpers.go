package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/errs"
	"go.uber.org/zap"
)

const (
	codeValidationFailed   = "validation_failed"
	codeDuplicateHandle    = "duplicate_handle"
	codeInvalidCredentials = "invalid_credentials"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeNotFound           = "not_found"
	codeRateLimited        = "rate_limited"
	codeStorageFault       = "storage_fault"
	codeInternal           = "internal_error"
)

func apiError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message, "code": code})
}

// respondError maps service errors to a status and code. Unclassified errors
// are logged and reported with a generic message.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, codeValidationFailed, err.Error())
	case errors.Is(err, errs.ErrDuplicateHandle):
		return apiError(c, fiber.StatusConflict, codeDuplicateHandle, "handle already exists")
	case errors.Is(err, errs.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, codeInvalidCredentials, "invalid credentials")
	case errors.Is(err, errs.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, codeNotFound, "not found")
	}

	handler.logger.Error("request failed",
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return apiError(c, fiber.StatusInternalServerError, codeStorageFault, "internal error")
}

// ErrorHandler renders errors that escape the handlers, such as recovered
// panics and framework errors, in the same JSON shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	switch {
	case status == fiber.StatusNotFound:
		return apiError(c, status, codeNotFound, "route not found")
	case status == fiber.StatusTooManyRequests:
		return apiError(c, status, codeRateLimited, "too many requests")
	case status >= fiber.StatusInternalServerError:
		return apiError(c, status, codeInternal, "internal error")
	default:
		return apiError(c, status, codeValidationFailed, fiberErr.Message)
	}
}

// parseBody decodes the JSON body into payload and runs its validate tags.
func (handler *Handler) parseBody(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return fmt.Errorf("%w: malformed request body", errs.ErrValidation)
	}
	if err := handler.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrValidation, describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		rule := fieldError.Tag()
		if fieldError.Param() != "" {
			rule += "=" + fieldError.Param()
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fieldError.Field(), rule))
	}
	return strings.Join(parts, "; ")
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return validate
}
