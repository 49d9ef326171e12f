package services

import (
	"context"
	"strings"

	"github.com/terraincognita07/healthtrack/internal/models"
)

type LedgerService struct {
	records    RecordRepository
	categories CategoryRepository
}

func NewLedgerService(records RecordRepository, categories CategoryRepository) *LedgerService {
	return &LedgerService{
		records:    records,
		categories: categories,
	}
}

// UpsertRecord writes the provided fields for (userID, day). Omitted fields
// keep their stored value, or zero when the record is new.
func (service *LedgerService) UpsertRecord(ctx context.Context, userID uint, dayRaw string, fields models.RecordFields) (models.DailyRecord, error) {
	day, err := ParseDay(dayRaw)
	if err != nil {
		return models.DailyRecord{}, err
	}
	if err := ValidateRecordFields(fields); err != nil {
		return models.DailyRecord{}, err
	}
	if fields.Mood != nil {
		mood := strings.TrimSpace(*fields.Mood)
		fields.Mood = &mood
	}

	record, err := service.records.Upsert(ctx, userID, day, fields)
	if err != nil {
		return models.DailyRecord{}, storageFault("upsert record", err)
	}
	return record, nil
}

func (service *LedgerService) GetRecord(ctx context.Context, userID uint, dayRaw string) (models.DailyRecord, error) {
	day, err := ParseDay(dayRaw)
	if err != nil {
		return models.DailyRecord{}, err
	}
	record, err := service.records.FindByUserAndDate(ctx, userID, day)
	if err != nil {
		return models.DailyRecord{}, storageFault("load record", err)
	}
	return record, nil
}

// ListRecords returns the user's records newest first. The result is never nil.
func (service *LedgerService) ListRecords(ctx context.Context, userID uint, window models.DayRange) ([]models.DailyRecord, error) {
	records, err := service.records.ListByUser(ctx, userID, window)
	if err != nil {
		return nil, storageFault("list records", err)
	}
	if records == nil {
		records = []models.DailyRecord{}
	}
	return records, nil
}

// ResetRecord removes the record for day. Removing an absent record succeeds.
func (service *LedgerService) ResetRecord(ctx context.Context, userID uint, dayRaw string) error {
	day, err := ParseDay(dayRaw)
	if err != nil {
		return err
	}
	return storageFault("delete record", service.records.DeleteByUserAndDate(ctx, userID, day))
}

// DeleteRecordByID removes a record only when it belongs to userID.
func (service *LedgerService) DeleteRecordByID(ctx context.Context, userID uint, recordID uint) error {
	if recordID == 0 {
		return validationError("record id is required")
	}
	return storageFault("delete record", service.records.DeleteByID(ctx, userID, recordID))
}

// RecordCategory stores value under the category's write policy: accumulating
// categories add to the stored value, the rest overwrite it. Notes replace the
// stored notes only when provided.
func (service *LedgerService) RecordCategory(ctx context.Context, userID uint, dayRaw string, category string, value float64, notes *string) (models.CategoryEntry, error) {
	spec, err := lookupCategory(category)
	if err != nil {
		return models.CategoryEntry{}, err
	}
	day, err := ParseDay(dayRaw)
	if err != nil {
		return models.CategoryEntry{}, err
	}
	if err := validateCategoryValue(value); err != nil {
		return models.CategoryEntry{}, err
	}
	noteText, updateNotes, err := normalizeNotes(notes)
	if err != nil {
		return models.CategoryEntry{}, err
	}

	entry, err := service.categories.Save(ctx, models.CategoryEntry{
		UserID:   userID,
		Date:     day,
		Category: spec.Name,
		Value:    value,
		Notes:    noteText,
	}, spec.Policy, updateNotes)
	if err != nil {
		return models.CategoryEntry{}, storageFault("save category entry", err)
	}
	return entry, nil
}

func (service *LedgerService) ListCategory(ctx context.Context, userID uint, category string, window models.DayRange) ([]models.CategoryEntry, error) {
	spec, err := lookupCategory(category)
	if err != nil {
		return nil, err
	}
	entries, err := service.categories.ListByUser(ctx, userID, spec.Name, window)
	if err != nil {
		return nil, storageFault("list category entries", err)
	}
	if entries == nil {
		entries = []models.CategoryEntry{}
	}
	return entries, nil
}

// ResetCategory removes one category entry. Removing an absent entry succeeds.
func (service *LedgerService) ResetCategory(ctx context.Context, userID uint, dayRaw string, category string) error {
	spec, err := lookupCategory(category)
	if err != nil {
		return err
	}
	day, err := ParseDay(dayRaw)
	if err != nil {
		return err
	}
	return storageFault("delete category entry", service.categories.DeleteByKey(ctx, userID, day, spec.Name))
}

func lookupCategory(raw string) (models.CategorySpec, error) {
	spec, ok := models.LookupCategory(strings.TrimSpace(raw))
	if !ok {
		return models.CategorySpec{}, validationError("unknown category %q", raw)
	}
	return spec, nil
}
