package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/healthtrack/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "healthtrack-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(database)
	})
	return database
}

func createTestUser(t *testing.T, repos *Repositories, handle string) models.User {
	t.Helper()

	user := models.User{
		Handle:       handle,
		PasswordHash: "hash-" + handle,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repos.Users.Create(context.Background(), &user); err != nil {
		t.Fatalf("create user %s: %v", handle, err)
	}
	if user.ID == 0 {
		t.Fatalf("expected non-zero id for user %s", handle)
	}
	return user
}

func intPtr(value int) *int {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func stringPtr(value string) *string {
	return &value
}
