package models

import "time"

const (
	MaxHandleLength      = 64
	MaxDisplayNameLength = 128
	// bcrypt ignores everything past 72 bytes.
	MaxSecretBytes = 72
)

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"userId"`
	Handle             string    `gorm:"uniqueIndex;not null" json:"handle"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	DisplayName        string    `gorm:"not null;default:''" json:"displayName"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"mustChangePassword"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
}
