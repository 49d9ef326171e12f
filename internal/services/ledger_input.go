package services

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/healthtrack/internal/models"
)

const (
	maxSleepHours    = 24
	maxMoodLength    = 64
	maxNotesLength   = 512
	maxCategoryValue = 1_000_000
)

// ParseDay accepts only the canonical YYYY-MM-DD form.
func ParseDay(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	parsed, err := time.Parse(models.DayLayout, value)
	if err != nil {
		return "", validationError("date %q must use YYYY-MM-DD", raw)
	}
	return parsed.Format(models.DayLayout), nil
}

// ParseDayRange validates optional inclusive bounds.
func ParseDayRange(fromRaw string, toRaw string) (models.DayRange, error) {
	var window models.DayRange
	if strings.TrimSpace(fromRaw) != "" {
		from, err := ParseDay(fromRaw)
		if err != nil {
			return models.DayRange{}, err
		}
		window.From = from
	}
	if strings.TrimSpace(toRaw) != "" {
		to, err := ParseDay(toRaw)
		if err != nil {
			return models.DayRange{}, err
		}
		window.To = to
	}
	if window.From != "" && window.To != "" && window.From > window.To {
		return models.DayRange{}, validationError("from must not be after to")
	}
	return window, nil
}

func ValidateRecordFields(fields models.RecordFields) error {
	counters := []struct {
		name  string
		value *int
	}{
		{"water", fields.Water},
		{"exercise", fields.Exercise},
		{"study", fields.Study},
		{"calories", fields.Calories},
		{"meals", fields.Meals},
	}
	for _, counter := range counters {
		if counter.value != nil && *counter.value < 0 {
			return validationError("%s must not be negative", counter.name)
		}
	}
	if fields.Sleep != nil {
		sleep := *fields.Sleep
		if math.IsNaN(sleep) || sleep < 0 || sleep > maxSleepHours {
			return validationError("sleep must be between 0 and %d hours", maxSleepHours)
		}
	}
	if fields.Mood != nil && utf8.RuneCountInString(*fields.Mood) > maxMoodLength {
		return validationError("mood exceeds %d characters", maxMoodLength)
	}
	return nil
}

func validateCategoryValue(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return validationError("value must be a finite number")
	}
	if value < 0 || value > maxCategoryValue {
		return validationError("value must be between 0 and %d", maxCategoryValue)
	}
	return nil
}

func normalizeNotes(notes *string) (string, bool, error) {
	if notes == nil {
		return "", false, nil
	}
	value := strings.TrimSpace(*notes)
	if utf8.RuneCountInString(value) > maxNotesLength {
		return "", false, validationError("notes exceed %d characters", maxNotesLength)
	}
	return value, true, nil
}
