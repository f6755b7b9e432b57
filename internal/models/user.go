package models

import "time"

// Roles a login credential can carry.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a resident login credential bound to exactly one home unit.
// Users are provisioned by an admin, never self-registered.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	HomeNo       string `gorm:"size:8;index;not null"`
	Role         string `gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
