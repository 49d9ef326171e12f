package services

import (
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/healthtrack/internal/models"
)

// NormalizeHandle trims surrounding whitespace. Handles are matched exactly
// after that, so case is preserved.
func NormalizeHandle(raw string) string {
	return strings.TrimSpace(raw)
}

func ValidateHandle(handle string) error {
	if handle == "" {
		return validationError("handle is required")
	}
	if utf8.RuneCountInString(handle) > models.MaxHandleLength {
		return validationError("handle exceeds %d characters", models.MaxHandleLength)
	}
	return nil
}

// ValidateSecret rejects blank secrets and anything bcrypt would truncate.
func ValidateSecret(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return validationError("secret is required")
	}
	if len(secret) > models.MaxSecretBytes {
		return validationError("secret exceeds %d bytes", models.MaxSecretBytes)
	}
	return nil
}

func NormalizeDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > models.MaxDisplayNameLength {
		return "", validationError("display name exceeds %d characters", models.MaxDisplayNameLength)
	}
	return name, nil
}
