package models

import "time"

// Contact is a name/phone pair for one person.
type Contact struct {
	Name  string `gorm:"size:64" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
}

// OwnerResident is the directory record for one home unit: the current
// owner and the current resident. At most one record per home number.
type OwnerResident struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HomeNo    string    `gorm:"size:8;uniqueIndex;not null" json:"homeNo"`
	Owner     Contact   `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	Resident  Contact   `gorm:"embedded;embeddedPrefix:resident_" json:"resident"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
