package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/healthtrack/internal/errs"
)

// storageFault passes classified sentinels through and wraps anything else.
func storageFault(action string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrNotFound) ||
		errors.Is(err, errs.ErrDuplicateHandle) ||
		errors.Is(err, errs.ErrValidation) ||
		errors.Is(err, errs.ErrStorageFault) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", errs.ErrStorageFault, action, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errs.ErrValidation, fmt.Sprintf(format, args...))
}
