package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
)

type recordRow = models.DailyRecord

type RecordRepository struct {
	store *Store
}

func (repo *RecordRepository) Upsert(_ context.Context, userID uint, day string, fields models.RecordFields) (models.DailyRecord, error) {
	store := repo.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[userID]; !ok {
		return models.DailyRecord{}, errs.ErrNotFound
	}

	now := time.Now().UTC()
	key := recordKey{userID: userID, date: day}
	record, found := store.records[key]
	if !found {
		record = models.DailyRecord{
			ID:        store.nextRecordID,
			UserID:    userID,
			Date:      day,
			CreatedAt: now,
		}
		store.nextRecordID++
	}
	if !found || !fields.IsEmpty() {
		fields.ApplyTo(&record)
		record.UpdatedAt = now
	}
	store.records[key] = record
	return record, nil
}

func (repo *RecordRepository) FindByUserAndDate(_ context.Context, userID uint, day string) (models.DailyRecord, error) {
	store := repo.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	record, ok := store.records[recordKey{userID: userID, date: day}]
	if !ok {
		return models.DailyRecord{}, errs.ErrNotFound
	}
	return record, nil
}

func (repo *RecordRepository) ListByUser(_ context.Context, userID uint, window models.DayRange) ([]models.DailyRecord, error) {
	store := repo.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	records := make([]models.DailyRecord, 0)
	for key, record := range store.records {
		if key.userID == userID && window.Contains(key.date) {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date == records[j].Date {
			return records[i].ID > records[j].ID
		}
		return records[i].Date > records[j].Date
	})
	if window.Limit > 0 && len(records) > window.Limit {
		records = records[:window.Limit]
	}
	return records, nil
}

func (repo *RecordRepository) DeleteByUserAndDate(_ context.Context, userID uint, day string) error {
	store := repo.store
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.records, recordKey{userID: userID, date: day})
	return nil
}

func (repo *RecordRepository) DeleteByID(_ context.Context, userID uint, recordID uint) error {
	store := repo.store
	store.mu.Lock()
	defer store.mu.Unlock()

	for key, record := range store.records {
		if record.ID == recordID && key.userID == userID {
			delete(store.records, key)
			return nil
		}
	}
	return nil
}
