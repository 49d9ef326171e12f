// Package errs holds the sentinel errors shared by the storage, service and
// transport layers so every layer maps failures the same way.
package errs

import "errors"

var (
	// ErrValidation marks input that is missing a required field or is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateHandle is returned when a handle is already registered.
	ErrDuplicateHandle = errors.New("handle already exists")

	// ErrInvalidCredentials covers both an unknown handle and a wrong secret.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound indicates the requested user or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageFault wraps any store failure that is not classified above.
	ErrStorageFault = errors.New("storage fault")
)
