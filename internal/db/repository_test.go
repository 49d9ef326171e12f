package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
)

func TestUserRepositoryRejectsDuplicateHandle(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	createTestUser(t, repos, "amy")

	duplicate := models.User{Handle: "amy", PasswordHash: "other"}
	err := repos.Users.Create(context.Background(), &duplicate)
	if !errors.Is(err, errs.ErrDuplicateHandle) {
		t.Fatalf("expected ErrDuplicateHandle, got %v", err)
	}

	// Handles are compared exactly.
	createTestUser(t, repos, "Amy")
}

func TestUserRepositoryLookups(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ctx := context.Background()
	user := createTestUser(t, repos, "lookup")

	byHandle, err := repos.Users.FindByHandle(ctx, "lookup")
	if err != nil {
		t.Fatalf("find by handle: %v", err)
	}
	if byHandle.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, byHandle.ID)
	}

	if _, err := repos.Users.FindByHandle(ctx, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing handle, got %v", err)
	}
	if _, err := repos.Users.FindByID(ctx, user.ID+100); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}

	if err := repos.Users.UpdatePassword(ctx, user.ID, "new-hash", true); err != nil {
		t.Fatalf("update password: %v", err)
	}
	updated, err := repos.Users.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.PasswordHash != "new-hash" || !updated.MustChangePassword {
		t.Fatalf("unexpected user after password update: %+v", updated)
	}
	if err := repos.Users.UpdatePassword(ctx, user.ID+100, "x", false); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when updating missing user, got %v", err)
	}
}

func TestRecordRepositoryUpsertKeepsOneRowPerDay(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ctx := context.Background()
	user := createTestUser(t, repos, "upsert")

	first, err := repos.Records.Upsert(ctx, user.ID, "2024-01-01", models.RecordFields{Water: intPtr(3), Sleep: floatPtr(7.5)})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Water != 3 || first.Sleep != 7.5 || first.Exercise != 0 {
		t.Fatalf("unexpected first record: %+v", first)
	}

	second, err := repos.Records.Upsert(ctx, user.ID, "2024-01-01", models.RecordFields{Water: intPtr(5), Mood: stringPtr("tired")})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert to keep record id %d, got %d", first.ID, second.ID)
	}
	if second.Water != 5 {
		t.Fatalf("expected water replaced with 5, got %d", second.Water)
	}
	if second.Sleep != 7.5 {
		t.Fatalf("expected omitted sleep to keep 7.5, got %v", second.Sleep)
	}
	if second.Mood != "tired" {
		t.Fatalf("expected mood tired, got %q", second.Mood)
	}

	var count int64
	if err := repos.Records.database.Model(&models.DailyRecord{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one stored record, got %d", count)
	}
}

func TestRecordRepositoryUpsertWithoutFieldsCreatesZeroRecord(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ctx := context.Background()
	user := createTestUser(t, repos, "empty-upsert")

	created, err := repos.Records.Upsert(ctx, user.ID, "2024-03-01", models.RecordFields{})
	if err != nil {
		t.Fatalf("empty upsert: %v", err)
	}
	if created.Water != 0 || created.Mood != "" {
		t.Fatalf("expected zero record, got %+v", created)
	}

	if _, err := repos.Records.Upsert(ctx, user.ID, "2024-03-01", models.RecordFields{Meals: intPtr(2)}); err != nil {
		t.Fatalf("meals upsert: %v", err)
	}
	again, err := repos.Records.Upsert(ctx, user.ID, "2024-03-01", models.RecordFields{})
	if err != nil {
		t.Fatalf("second empty upsert: %v", err)
	}
	if again.Meals != 2 {
		t.Fatalf("expected empty upsert to leave meals=2, got %d", again.Meals)
	}
}

func TestRecordRepositoryListOrdersByDateDescending(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ctx := context.Background()
	user := createTestUser(t, repos, "list")
	other := createTestUser(t, repos, "other")

	for _, day := range []string{"2024-01-02", "2024-01-05", "2024-01-01", "2024-01-04"} {
		if _, err := repos.Records.Upsert(ctx, user.ID, day, models.RecordFields{Water: intPtr(1)}); err != nil {
			t.Fatalf("upsert %s: %v", day, err)
		}
	}
	if _, err := repos.Records.Upsert(ctx, other.ID, "2024-01-03", models.RecordFields{Water: intPtr(1)}); err != nil {
		t.Fatalf("upsert other user: %v", err)
	}

	all, err := repos.Records.ListByUser(ctx, user.ID, models.DayRange{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	want := []string{"2024-01-05", "2024-01-04", "2024-01-02", "2024-01-01"}
	if diff := cmp.Diff(want, recordDates(all)); diff != "" {
		t.Fatalf("unexpected record order (-want +got):\n%s", diff)
	}

	bounded, err := repos.Records.ListByUser(ctx, user.ID, models.DayRange{From: "2024-01-02", To: "2024-01-04", Limit: 1})
	if err != nil {
		t.Fatalf("list bounded: %v", err)
	}
	if diff := cmp.Diff([]string{"2024-01-04"}, recordDates(bounded)); diff != "" {
		t.Fatalf("unexpected bounded records (-want +got):\n%s", diff)
	}

	none, err := repos.Records.ListByUser(ctx, user.ID+100, models.DayRange{})
	if err != nil {
		t.Fatalf("list unknown user: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}

func TestRecordRepositoryDeletes(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ctx := context.Background()
	user := createTestUser(t, repos, "deleter")
	stranger := createTestUser(t, repos, "stranger")

	record, err := repos.Records.Upsert(ctx, user.ID, "2024-02-01", models.RecordFields{Study: intPtr(45)})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repos.Records.DeleteByID(ctx, stranger.ID, record.ID); err != nil {
		t.Fatalf("delete by foreign user: %v", err)
	}
	if _, err := repos.Records.FindByUserAndDate(ctx, user.ID, "2024-02-01"); err != nil {
		t.Fatalf("expected record to survive delete by another user: %v", err)
	}

	if err := repos.Records.DeleteByUserAndDate(ctx, user.ID, "2024-02-01"); err != nil {
		t.Fatalf("delete by date: %v", err)
	}
	if _, err := repos.Records.FindByUserAndDate(ctx, user.ID, "2024-02-01"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repos.Records.DeleteByUserAndDate(ctx, user.ID, "2024-02-01"); err != nil {
		t.Fatalf("expected repeated delete to be a no-op, got %v", err)
	}
}

func TestCategoryRepositoryAccumulatesAndReplaces(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))
	ctx := context.Background()
	user := createTestUser(t, repos, "categories")

	hydration := models.CategoryEntry{UserID: user.ID, Date: "2024-01-01", Category: models.CategoryHydration, Value: 3}
	if _, err := repos.Categories.Save(ctx, hydration, models.PolicyAccumulate, false); err != nil {
		t.Fatalf("first hydration save: %v", err)
	}
	hydration.Value = 5
	summed, err := repos.Categories.Save(ctx, hydration, models.PolicyAccumulate, false)
	if err != nil {
		t.Fatalf("second hydration save: %v", err)
	}
	if summed.Value != 8 {
		t.Fatalf("expected accumulated hydration 8, got %v", summed.Value)
	}
	if summed.Unit != "glasses" {
		t.Fatalf("expected unit glasses, got %q", summed.Unit)
	}

	habit := models.CategoryEntry{UserID: user.ID, Date: "2024-01-01", Category: models.CategoryHabit, Value: 1, Notes: "stretch"}
	if _, err := repos.Categories.Save(ctx, habit, models.PolicyReplace, true); err != nil {
		t.Fatalf("first habit save: %v", err)
	}
	habit.Value = 0
	habit.Notes = "ignored"
	replaced, err := repos.Categories.Save(ctx, habit, models.PolicyReplace, false)
	if err != nil {
		t.Fatalf("second habit save: %v", err)
	}
	if replaced.Value != 0 {
		t.Fatalf("expected replaced habit value 0, got %v", replaced.Value)
	}
	if replaced.Notes != "stretch" {
		t.Fatalf("expected notes kept when not provided, got %q", replaced.Notes)
	}

	entries, err := repos.Categories.ListByUser(ctx, user.ID, "", models.DayRange{From: "2024-01-01", To: "2024-01-01"})
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for the day, got %d", len(entries))
	}
	if entries[0].Category != models.CategoryHabit || entries[1].Category != models.CategoryHydration {
		t.Fatalf("expected entries ordered by category, got %s then %s", entries[0].Category, entries[1].Category)
	}

	if err := repos.Categories.DeleteByKey(ctx, user.ID, "2024-01-01", models.CategoryHydration); err != nil {
		t.Fatalf("reset hydration: %v", err)
	}
	if _, err := repos.Categories.FindByKey(ctx, user.ID, "2024-01-01", models.CategoryHydration); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected hydration reset, got %v", err)
	}
	if err := repos.Categories.DeleteByKey(ctx, user.ID, "2024-01-01", models.CategoryHydration); err != nil {
		t.Fatalf("expected repeated reset to succeed, got %v", err)
	}
}

func recordDates(records []models.DailyRecord) []string {
	dates := make([]string, 0, len(records))
	for _, record := range records {
		dates = append(dates, record.Date)
	}
	return dates
}

func TestRecordRepositoryUpsertForUnknownUserIsNotFound(t *testing.T) {
	repos := NewRepositories(openTestDatabase(t))

	_, err := repos.Records.Upsert(context.Background(), 999, "2024-01-01", models.RecordFields{Water: intPtr(1)})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}
