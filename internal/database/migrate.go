package database

import (
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the catalog schema, join tables included
func Migrate(db *gorm.DB) error {
	log.Info("Migrating database schema")
	err := db.AutoMigrate(
		&models.Size{},
		&models.Sauce{},
		&models.Crust{},
		&models.ToppingCategory{},
		&models.Topping{},
		&models.Pizza{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
