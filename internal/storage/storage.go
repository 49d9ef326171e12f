// Package storage picks the repository backend named by the configuration.
package storage

import (
	"fmt"

	"github.com/terraincognita07/healthtrack/internal/config"
	"github.com/terraincognita07/healthtrack/internal/db"
	"github.com/terraincognita07/healthtrack/internal/memstore"
	"github.com/terraincognita07/healthtrack/internal/services"
	"go.uber.org/zap"
)

// CloseFunc releases the backend.
type CloseFunc func() error

func Open(cfg config.Config, logger *zap.Logger) (services.Repositories, CloseFunc, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		database, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return services.Repositories{}, nil, fmt.Errorf("database init failed: %w", err)
		}
		logger.Info("sqlite storage ready", zap.String("path", cfg.DBPath))

		repositories := db.NewRepositories(database)
		return services.Repositories{
			Users:      repositories.Users,
			Records:    repositories.Records,
			Categories: repositories.Categories,
		}, func() error { return db.Close(database) }, nil
	case config.BackendMemory:
		logger.Warn("in-memory storage selected; data is lost on restart")

		store := memstore.New()
		return services.Repositories{
			Users:      store.Users(),
			Records:    store.Records(),
			Categories: store.Categories(),
		}, func() error { return nil }, nil
	default:
		return services.Repositories{}, nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}
