package models

import "time"

// AuditLog records mutating operations for auditing.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	Role      string `gorm:"size:16;index"`
	ActorID   uint   `gorm:"index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Action    string `gorm:"size:2048"`
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
