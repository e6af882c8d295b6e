package bootstrap

import (
	"fmt"
	"log"

	"anoa.com/storyassistant/internal/entity"
	"gorm.io/gorm"
)

// Migrate creates the four tables idempotently. Databases created before the
// stories.parameters column existed get it added first.
func Migrate(db *gorm.DB) error {
	if err := addStoryParametersColumn(db); err != nil {
		return err
	}

	return db.AutoMigrate(
		&entity.User{},
		&entity.Story{},
		&entity.Professional{},
		&entity.Booking{},
	)
}

func addStoryParametersColumn(db *gorm.DB) error {
	migrator := db.Migrator()
	if !migrator.HasTable(&entity.Story{}) {
		return nil
	}
	if migrator.HasColumn(&entity.Story{}, "Parameters") {
		return nil
	}

	if err := migrator.AddColumn(&entity.Story{}, "Parameters"); err != nil {
		return fmt.Errorf("add stories.parameters column: %w", err)
	}
	if err := db.Model(&entity.Story{}).
		Where("parameters IS NULL").
		Update("parameters", "null").Error; err != nil {
		return fmt.Errorf("backfill stories.parameters: %w", err)
	}
	log.Println("Added missing stories.parameters column")
	return nil
}
