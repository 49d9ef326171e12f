package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthtrack/internal/cli"
	"github.com/terraincognita07/healthtrack/internal/config"
	"github.com/terraincognita07/healthtrack/internal/db"
	"github.com/terraincognita07/healthtrack/internal/services"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSQLiteConfig(*configPath)
			if err != nil {
				return err
			}
			return cli.RunMigrate(cfg.DBPath, cmd.OutOrStdout())
		},
	}
}

func newCreateUserCommand(configPath *string) *cobra.Command {
	var displayName string

	command := &cobra.Command{
		Use:   "create-user <handle>",
		Short: "Create an account; the secret is read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, closeDB, err := openAuthService(*configPath)
			if err != nil {
				return err
			}
			defer closeDB()

			secrets := cli.NewSecretReader(os.Stdin, cmd.ErrOrStderr())
			return cli.RunCreateUser(cmd.Context(), auth, args[0], displayName, secrets, cmd.OutOrStdout())
		},
	}
	command.Flags().StringVar(&displayName, "display-name", "", "optional display name")
	return command
}

func newResetPasswordCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <handle>",
		Short: "Issue a temporary password that must be changed after login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, closeDB, err := openAuthService(*configPath)
			if err != nil {
				return err
			}
			defer closeDB()

			return cli.RunResetPassword(cmd.Context(), auth, args[0], cmd.OutOrStdout())
		},
	}
}

// loadSQLiteConfig loads settings for the operator commands, which only make
// sense against the durable backend.
func loadSQLiteConfig(configPath string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, commandError("load config", err)
	}
	if cfg.StorageBackend != config.BackendSQLite {
		return config.Config{}, commandError("operator commands", errMemoryBackend)
	}
	return cfg, nil
}

func openAuthService(configPath string) (*services.AuthService, func(), error) {
	cfg, err := loadSQLiteConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, commandError("database init failed", err)
	}
	repositories := db.NewRepositories(database)
	return services.NewAuthService(repositories.Users, cfg.BcryptCost), func() { _ = db.Close(database) }, nil
}
