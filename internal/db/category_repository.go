package db

import (
	"context"
	"time"

	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	database *gorm.DB
}

func NewCategoryRepository(database *gorm.DB) *CategoryRepository {
	return &CategoryRepository{database: database}
}

var categoryEntryKey = []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "category"}}

// Save inserts the entry or, when the key exists, either replaces or adds to
// the stored value depending on policy.
func (repo *CategoryRepository) Save(ctx context.Context, entry models.CategoryEntry, policy models.WritePolicy, updateNotes bool) (models.CategoryEntry, error) {
	now := time.Now().UTC()
	entry.ID = 0
	entry.CreatedAt = now
	entry.UpdatedAt = now

	assignments := map[string]any{"updated_at": now}
	if policy == models.PolicyAccumulate {
		assignments["value"] = gorm.Expr("category_entries.value + excluded.value")
	} else {
		assignments["value"] = gorm.Expr("excluded.value")
	}
	if updateNotes {
		assignments["notes"] = gorm.Expr("excluded.notes")
	}

	if err := repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   categoryEntryKey,
		DoUpdates: clause.Assignments(assignments),
	}).Create(&entry).Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.CategoryEntry{}, errs.ErrNotFound
		}
		return models.CategoryEntry{}, err
	}
	return repo.FindByKey(ctx, entry.UserID, entry.Date, entry.Category)
}

func (repo *CategoryRepository) FindByKey(ctx context.Context, userID uint, day string, category string) (models.CategoryEntry, error) {
	entry := models.CategoryEntry{}
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND date = ? AND category = ?", userID, day, category).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CategoryEntry{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CategoryEntry{}, errs.ErrNotFound
	}
	return entry.WithUnit(), nil
}

// ListByUser lists entries newest first; an empty category matches all of them.
func (repo *CategoryRepository) ListByUser(ctx context.Context, userID uint, category string, window models.DayRange) ([]models.CategoryEntry, error) {
	query := repo.database.WithContext(ctx).Model(&models.CategoryEntry{}).Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if window.From != "" {
		query = query.Where("date >= ?", window.From)
	}
	if window.To != "" {
		query = query.Where("date <= ?", window.To)
	}
	if window.Limit > 0 {
		query = query.Limit(window.Limit)
	}

	entries := make([]models.CategoryEntry, 0)
	if err := query.Order("date DESC, category ASC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	for index := range entries {
		entries[index] = entries[index].WithUnit()
	}
	return entries, nil
}

func (repo *CategoryRepository) DeleteByKey(ctx context.Context, userID uint, day string, category string) error {
	return repo.database.WithContext(ctx).
		Where("user_id = ? AND date = ? AND category = ?", userID, day, category).
		Delete(&models.CategoryEntry{}).Error
}
