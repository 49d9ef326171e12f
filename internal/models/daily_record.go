package models

import "time"

// DayLayout is the storage and wire format of every ledger date.
const DayLayout = "2006-01-02"

// DailyRecord holds one user's wellness counters for one calendar day.
type DailyRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_daily_records_user_date" json:"userId"`
	Date      string    `gorm:"not null;uniqueIndex:uidx_daily_records_user_date" json:"date"`
	Water     int       `gorm:"not null" json:"water"`
	Sleep     float64   `gorm:"not null" json:"sleep"`
	Exercise  int       `gorm:"not null" json:"exercise"`
	Study     int       `gorm:"not null" json:"study"`
	Calories  int       `gorm:"not null" json:"calories"`
	Meals     int       `gorm:"not null" json:"meals"`
	Mood      string    `gorm:"not null" json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (DailyRecord) TableName() string {
	return "daily_records"
}

// RecordFields carries a partial update; nil fields are left untouched on an
// existing record and stored as zero on a new one.
type RecordFields struct {
	Water    *int
	Sleep    *float64
	Exercise *int
	Study    *int
	Calories *int
	Meals    *int
	Mood     *string
}

// Columns returns the provided fields keyed by column name.
func (fields RecordFields) Columns() map[string]any {
	columns := make(map[string]any, 7)
	if fields.Water != nil {
		columns["water"] = *fields.Water
	}
	if fields.Sleep != nil {
		columns["sleep"] = *fields.Sleep
	}
	if fields.Exercise != nil {
		columns["exercise"] = *fields.Exercise
	}
	if fields.Study != nil {
		columns["study"] = *fields.Study
	}
	if fields.Calories != nil {
		columns["calories"] = *fields.Calories
	}
	if fields.Meals != nil {
		columns["meals"] = *fields.Meals
	}
	if fields.Mood != nil {
		columns["mood"] = *fields.Mood
	}
	return columns
}

func (fields RecordFields) IsEmpty() bool {
	return len(fields.Columns()) == 0
}

// ApplyTo copies the provided fields onto record.
func (fields RecordFields) ApplyTo(record *DailyRecord) {
	if fields.Water != nil {
		record.Water = *fields.Water
	}
	if fields.Sleep != nil {
		record.Sleep = *fields.Sleep
	}
	if fields.Exercise != nil {
		record.Exercise = *fields.Exercise
	}
	if fields.Study != nil {
		record.Study = *fields.Study
	}
	if fields.Calories != nil {
		record.Calories = *fields.Calories
	}
	if fields.Meals != nil {
		record.Meals = *fields.Meals
	}
	if fields.Mood != nil {
		record.Mood = *fields.Mood
	}
}

// DayRange bounds a ledger listing. Empty bounds are open, Limit <= 0 is unbounded.
type DayRange struct {
	From  string
	To    string
	Limit int
}

// Contains reports whether day falls within the inclusive bounds.
func (window DayRange) Contains(day string) bool {
	if window.From != "" && day < window.From {
		return false
	}
	if window.To != "" && day > window.To {
		return false
	}
	return true
}
