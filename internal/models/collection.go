package models

import "time"

// Collection is one maintenance/fee payment event for one home and one
// (month, year, category) period. Amounts are stored in paise to avoid
// float error, e.g. 500 rupees = 50000 paise.
//
// The owner/resident fields are snapshots of the directory at creation
// time. They are never refreshed: a receipt must show who paid, not
// whoever lives in the unit today.
type Collection struct {
	ID          uint   `gorm:"primaryKey"`
	HomeNo      string `gorm:"size:8;not null;uniqueIndex:idx_collection_period"`
	AmountPaise int64  `gorm:"not null"`
	Month       string `gorm:"size:16;not null;uniqueIndex:idx_collection_period"`
	Year        int    `gorm:"not null;uniqueIndex:idx_collection_period"`
	Category    string `gorm:"size:16;not null;default:Maintenance;uniqueIndex:idx_collection_period"`

	ResidentName  string `gorm:"size:64"`
	ResidentPhone string `gorm:"size:20"`
	OwnerName     string `gorm:"size:64"`
	OwnerPhone    string `gorm:"size:20"`

	Status    string `gorm:"size:16;not null;default:PAID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
