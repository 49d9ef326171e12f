package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/healthtrack/internal/memstore"
	"github.com/terraincognita07/healthtrack/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var errDiskFull = errors.New("disk full")

type testServices struct {
	store     *memstore.Store
	auth      *AuthService
	ledger    *LedgerService
	dashboard *DashboardService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	store := memstore.New()
	return testServices{
		store:     store,
		auth:      NewAuthService(store.Users(), bcrypt.MinCost),
		ledger:    NewLedgerService(store.Records(), store.Categories()),
		dashboard: NewDashboardService(store.Users(), store.Records(), store.Categories()),
	}
}

func registerTestUser(t *testing.T, svc testServices, handle string) uint {
	t.Helper()

	userID, err := svc.auth.Register(context.Background(), handle, "pw-"+handle, "")
	require.NoError(t, err)
	return userID
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

// brokenUsers fails every call with errDiskFull.
type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) error { return errDiskFull }

func (brokenUsers) FindByHandle(context.Context, string) (models.User, error) {
	return models.User{}, errDiskFull
}

func (brokenUsers) FindByID(context.Context, uint) (models.User, error) {
	return models.User{}, errDiskFull
}

func (brokenUsers) UpdatePassword(context.Context, uint, string, bool) error { return errDiskFull }

type brokenRecords struct{}

func (brokenRecords) Upsert(context.Context, uint, string, models.RecordFields) (models.DailyRecord, error) {
	return models.DailyRecord{}, errDiskFull
}

func (brokenRecords) FindByUserAndDate(context.Context, uint, string) (models.DailyRecord, error) {
	return models.DailyRecord{}, errDiskFull
}

func (brokenRecords) ListByUser(context.Context, uint, models.DayRange) ([]models.DailyRecord, error) {
	return nil, errDiskFull
}

func (brokenRecords) DeleteByUserAndDate(context.Context, uint, string) error { return errDiskFull }

func (brokenRecords) DeleteByID(context.Context, uint, uint) error { return errDiskFull }
