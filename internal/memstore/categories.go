package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
)

type categoryRow = models.CategoryEntry

type CategoryRepository struct {
	store *Store
}

func (repo *CategoryRepository) Save(_ context.Context, entry models.CategoryEntry, policy models.WritePolicy, updateNotes bool) (models.CategoryEntry, error) {
	store := repo.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[entry.UserID]; !ok {
		return models.CategoryEntry{}, errs.ErrNotFound
	}

	now := time.Now().UTC()
	key := categoryKey{userID: entry.UserID, date: entry.Date, category: entry.Category}
	stored, found := store.categories[key]
	if !found {
		entry.ID = store.nextCategoryID
		store.nextCategoryID++
		entry.CreatedAt = now
		entry.UpdatedAt = now
		entry.Unit = ""
		store.categories[key] = entry
		return entry.WithUnit(), nil
	}

	if policy == models.PolicyAccumulate {
		stored.Value += entry.Value
	} else {
		stored.Value = entry.Value
	}
	if updateNotes {
		stored.Notes = entry.Notes
	}
	stored.UpdatedAt = now
	store.categories[key] = stored
	return stored.WithUnit(), nil
}

func (repo *CategoryRepository) FindByKey(_ context.Context, userID uint, day string, category string) (models.CategoryEntry, error) {
	store := repo.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	entry, ok := store.categories[categoryKey{userID: userID, date: day, category: category}]
	if !ok {
		return models.CategoryEntry{}, errs.ErrNotFound
	}
	return entry.WithUnit(), nil
}

func (repo *CategoryRepository) ListByUser(_ context.Context, userID uint, category string, window models.DayRange) ([]models.CategoryEntry, error) {
	store := repo.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	entries := make([]models.CategoryEntry, 0)
	for key, entry := range store.categories {
		if key.userID != userID || !window.Contains(key.date) {
			continue
		}
		if category != "" && key.category != category {
			continue
		}
		entries = append(entries, entry.WithUnit())
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].ID > entries[j].ID
	})
	if window.Limit > 0 && len(entries) > window.Limit {
		entries = entries[:window.Limit]
	}
	return entries, nil
}

func (repo *CategoryRepository) DeleteByKey(_ context.Context, userID uint, day string, category string) error {
	store := repo.store
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.categories, categoryKey{userID: userID, date: day, category: category})
	return nil
}
