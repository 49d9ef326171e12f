package services

import (
	"context"
	"time"

	"github.com/terraincognita07/healthtrack/internal/models"
	"golang.org/x/sync/errgroup"
)

const DashboardRecentDays = 30

type Dashboard struct {
	User    models.User            `json:"user"`
	Records []models.DailyRecord   `json:"records"`
	Today   []models.CategoryEntry `json:"today"`
	Totals  map[string]float64     `json:"totals"`
}

type DashboardService struct {
	users      UserRepository
	records    RecordRepository
	categories CategoryRepository
}

func NewDashboardService(users UserRepository, records RecordRepository, categories CategoryRepository) *DashboardService {
	return &DashboardService{
		users:      users,
		records:    records,
		categories: categories,
	}
}

// Dashboard loads the profile, the most recent records and today's category
// entries concurrently. The first failing read cancels the others.
func (service *DashboardService) Dashboard(ctx context.Context, userID uint, today time.Time) (Dashboard, error) {
	day := today.Format(models.DayLayout)

	var (
		user    models.User
		records []models.DailyRecord
		entries []models.CategoryEntry
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		loaded, err := service.users.FindByID(groupCtx, userID)
		if err != nil {
			return storageFault("load user", err)
		}
		user = loaded
		return nil
	})
	group.Go(func() error {
		loaded, err := service.records.ListByUser(groupCtx, userID, models.DayRange{Limit: DashboardRecentDays})
		if err != nil {
			return storageFault("list records", err)
		}
		records = loaded
		return nil
	})
	group.Go(func() error {
		loaded, err := service.categories.ListByUser(groupCtx, userID, "", models.DayRange{From: day, To: day})
		if err != nil {
			return storageFault("list category entries", err)
		}
		entries = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		return Dashboard{}, err
	}

	if records == nil {
		records = []models.DailyRecord{}
	}
	if entries == nil {
		entries = []models.CategoryEntry{}
	}
	totals := make(map[string]float64, len(models.AllCategories))
	for _, category := range models.AllCategories {
		totals[category] = 0
	}
	for _, entry := range entries {
		totals[entry.Category] += entry.Value
	}

	return Dashboard{
		User:    user,
		Records: records,
		Today:   entries,
		Totals:  totals,
	}, nil
}
