package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "healthtrack",
		Short: "Personal health tracker API",
		Long: `healthtrack serves a JSON API for daily wellness records and per-category
counters (hydration, workout, habit, meal, sleep) backed by SQLite.

  $ healthtrack serve                     # start the API on $PORT (default 10000)
  $ healthtrack migrate                   # apply schema migrations and list them
  $ healthtrack create-user amy           # add an account, secret read from stdin
  $ healthtrack reset-password amy        # issue a temporary password

Settings come from defaults, then the YAML file named by --config or
$HEALTHTRACK_CONFIG, then environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newServeCommand(&configPath),
		newMigrateCommand(&configPath),
		newCreateUserCommand(&configPath),
		newResetPasswordCommand(&configPath),
	)
	return root
}

var errMemoryBackend = errors.New("STORAGE_BACKEND=memory keeps no data between processes")

func commandError(action string, err error) error {
	return fmt.Errorf("%s: %w", action, err)
}
