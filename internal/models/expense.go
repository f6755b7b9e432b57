package models

import "time"

// Expense is one society expenditure. Month and Year are denormalized
// from Date at write time so period filters don't need date-range math.
type Expense struct {
	ID            uint      `gorm:"primaryKey"`
	Title         string    `gorm:"size:128;not null"`
	AmountPaise   int64     `gorm:"not null"`
	Date          time.Time `gorm:"not null"`
	Month         string    `gorm:"size:16;index:idx_expense_period,priority:2;not null"`
	Year          int       `gorm:"index:idx_expense_period,priority:1;not null"`
	HasAttachment bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
