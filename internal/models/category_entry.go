package models

import "time"

const (
	CategoryHydration = "hydration"
	CategoryWorkout   = "workout"
	CategoryHabit     = "habit"
	CategoryMeal      = "meal"
	CategorySleep     = "sleep"
)

// WritePolicy decides what a second write to the same (user, date, category) does.
type WritePolicy int

const (
	PolicyReplace WritePolicy = iota
	PolicyAccumulate
)

type CategorySpec struct {
	Name   string
	Unit   string
	Policy WritePolicy
}

var categorySpecs = map[string]CategorySpec{
	CategoryHydration: {Name: CategoryHydration, Unit: "glasses", Policy: PolicyAccumulate},
	CategoryWorkout:   {Name: CategoryWorkout, Unit: "minutes", Policy: PolicyAccumulate},
	CategoryHabit:     {Name: CategoryHabit, Unit: "count", Policy: PolicyReplace},
	CategoryMeal:      {Name: CategoryMeal, Unit: "kcal", Policy: PolicyReplace},
	CategorySleep:     {Name: CategorySleep, Unit: "hours", Policy: PolicyReplace},
}

// AllCategories lists the supported categories in display order.
var AllCategories = []string{
	CategoryHydration,
	CategoryWorkout,
	CategoryHabit,
	CategoryMeal,
	CategorySleep,
}

func LookupCategory(name string) (CategorySpec, bool) {
	spec, ok := categorySpecs[name]
	return spec, ok
}

// CategoryEntry is one counter for one user, day and category.
type CategoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_category_entries_key" json:"userId"`
	Date      string    `gorm:"not null;uniqueIndex:uidx_category_entries_key" json:"date"`
	Category  string    `gorm:"not null;uniqueIndex:uidx_category_entries_key" json:"category"`
	Value     float64   `gorm:"not null" json:"value"`
	Unit      string    `gorm:"-" json:"unit"`
	Notes     string    `gorm:"not null" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CategoryEntry) TableName() string {
	return "category_entries"
}

// WithUnit fills the display unit from the category catalogue.
func (entry CategoryEntry) WithUnit() CategoryEntry {
	if spec, ok := categorySpecs[entry.Category]; ok {
		entry.Unit = spec.Unit
	}
	return entry
}
