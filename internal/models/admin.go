package models

import "time"

// Admin is the privileged credential store, kept separate from resident
// users. Created once through the setup-gated register endpoint.
type Admin struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
