package db

import (
	"context"
	"sort"
	"time"

	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordRepository struct {
	database *gorm.DB
}

func NewRecordRepository(database *gorm.DB) *RecordRepository {
	return &RecordRepository{database: database}
}

var dailyRecordKey = []clause.Column{{Name: "user_id"}, {Name: "date"}}

// Upsert writes the provided fields for (userID, day) in one statement. A new
// row starts from zero values; an existing row only has provided columns replaced.
func (repo *RecordRepository) Upsert(ctx context.Context, userID uint, day string, fields models.RecordFields) (models.DailyRecord, error) {
	now := time.Now().UTC()
	record := models.DailyRecord{
		UserID:    userID,
		Date:      day,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fields.ApplyTo(&record)

	conflict := clause.OnConflict{Columns: dailyRecordKey}
	columns := fields.Columns()
	if len(columns) == 0 {
		conflict.DoNothing = true
	} else {
		names := make([]string, 0, len(columns)+1)
		for name := range columns {
			names = append(names, name)
		}
		sort.Strings(names)
		conflict.DoUpdates = clause.AssignmentColumns(append(names, "updated_at"))
	}

	if err := repo.database.WithContext(ctx).Clauses(conflict).Create(&record).Error; err != nil {
		if isForeignKeyViolation(err) {
			return models.DailyRecord{}, errs.ErrNotFound
		}
		return models.DailyRecord{}, err
	}
	return repo.FindByUserAndDate(ctx, userID, day)
}

func (repo *RecordRepository) FindByUserAndDate(ctx context.Context, userID uint, day string) (models.DailyRecord, error) {
	record := models.DailyRecord{}
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.DailyRecord{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyRecord{}, errs.ErrNotFound
	}
	return record, nil
}

func (repo *RecordRepository) ListByUser(ctx context.Context, userID uint, window models.DayRange) ([]models.DailyRecord, error) {
	query := repo.database.WithContext(ctx).Model(&models.DailyRecord{}).Where("user_id = ?", userID)
	if window.From != "" {
		query = query.Where("date >= ?", window.From)
	}
	if window.To != "" {
		query = query.Where("date <= ?", window.To)
	}
	if window.Limit > 0 {
		query = query.Limit(window.Limit)
	}

	records := make([]models.DailyRecord, 0)
	if err := query.Order("date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *RecordRepository) DeleteByUserAndDate(ctx context.Context, userID uint, day string) error {
	return repo.database.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Delete(&models.DailyRecord{}).Error
}

func (repo *RecordRepository) DeleteByID(ctx context.Context, userID uint, recordID uint) error {
	return repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", recordID, userID).
		Delete(&models.DailyRecord{}).Error
}
