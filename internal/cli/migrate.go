package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/terraincognita07/healthtrack/internal/db"
)

// RunMigrate applies pending schema migrations to dbPath and lists every
// applied version.
func RunMigrate(dbPath string, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	applied, err := db.AppliedMigrations(database)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	color.New(color.FgGreen, color.Bold).Fprintf(out, "Schema up to date (%s)\n", dbPath)
	for _, migration := range applied {
		fmt.Fprintf(out, "  %s  %s  %s\n", migration.Version, migration.Name, color.New(color.Faint).Sprint(migration.AppliedAt))
	}
	return nil
}
