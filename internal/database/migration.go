package database

import (
	"fmt"

	"github.com/anandmuthunayagam/Mahizh/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.OwnerResident{},
		&models.Collection{},
		&models.Expense{},
		&models.Attachment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
