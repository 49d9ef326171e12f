// Package services holds the credential and ledger rules. Storage is reached
// through the small interfaces below so the SQLite and in-memory backends are
// interchangeable.
package services

import (
	"context"

	"github.com/terraincognita07/healthtrack/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByHandle(ctx context.Context, handle string) (models.User, error)
	FindByID(ctx context.Context, userID uint) (models.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string, mustChangePassword bool) error
}

type RecordRepository interface {
	Upsert(ctx context.Context, userID uint, day string, fields models.RecordFields) (models.DailyRecord, error)
	FindByUserAndDate(ctx context.Context, userID uint, day string) (models.DailyRecord, error)
	ListByUser(ctx context.Context, userID uint, window models.DayRange) ([]models.DailyRecord, error)
	DeleteByUserAndDate(ctx context.Context, userID uint, day string) error
	DeleteByID(ctx context.Context, userID uint, recordID uint) error
}

type CategoryRepository interface {
	Save(ctx context.Context, entry models.CategoryEntry, policy models.WritePolicy, updateNotes bool) (models.CategoryEntry, error)
	FindByKey(ctx context.Context, userID uint, day string, category string) (models.CategoryEntry, error)
	ListByUser(ctx context.Context, userID uint, category string, window models.DayRange) ([]models.CategoryEntry, error)
	DeleteByKey(ctx context.Context, userID uint, day string, category string) error
}

// Repositories bundles one backend's implementations.
type Repositories struct {
	Users      UserRepository
	Records    RecordRepository
	Categories CategoryRepository
}
