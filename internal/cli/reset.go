// Package cli implements the operator commands run against a local database.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/services"
)

// RunResetPassword gives handle a temporary password that must be changed
// after the next login and prints it to out.
func RunResetPassword(ctx context.Context, auth *services.AuthService, handle string, out io.Writer) error {
	temporary, err := auth.ResetSecret(ctx, handle)
	if errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("user %q not found", services.NormalizeHandle(handle))
	}
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	color.New(color.FgGreen, color.Bold).Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", color.New(color.FgYellow).Sprint(temporary))
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
