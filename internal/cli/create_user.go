package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/terraincognita07/healthtrack/internal/services"
)

// RunCreateUser registers handle with a secret read twice from secrets.
func RunCreateUser(ctx context.Context, auth *services.AuthService, handle string, displayName string, secrets *SecretReader, out io.Writer) error {
	secret, err := secrets.Read("Secret: ")
	if err != nil {
		return err
	}
	confirm, err := secrets.Read("Confirm secret: ")
	if err != nil {
		return err
	}
	if secret != confirm {
		return errors.New("secrets do not match")
	}

	userID, err := auth.Register(ctx, handle, secret, displayName)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	color.New(color.FgGreen, color.Bold).Fprintln(out, "User created")
	fmt.Fprintf(out, "Handle: %s\nUser ID: %d\n", services.NormalizeHandle(handle), userID)
	return nil
}
