package models

import "time"

// Attachment holds the raw receipt bytes for one expense. The unique
// index keeps it one-per-expense; updates replace the row's content.
// Deleting an expense must delete its attachment explicitly (the
// expense handler does the cascade, it is not automatic).
type Attachment struct {
	ID          uint   `gorm:"primaryKey"`
	ExpenseID   uint   `gorm:"uniqueIndex;not null"`
	FileData    []byte `gorm:"not null"`
	FileName    string `gorm:"size:255"`
	ContentType string `gorm:"size:128"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
