package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
)

// Migrate creates or updates the schema and seeds the task status lookup.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.TaskStatus{},
		&models.Task{},
		&models.Tag{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return seedTaskStatuses(db)
}

func seedTaskStatuses(db *gorm.DB) error {
	statuses := []models.TaskStatus{
		{ID: models.TaskStatusToDo, Name: "To Do"},
		{ID: models.TaskStatusInProgress, Name: "In Progress"},
		{ID: models.TaskStatusDone, Name: "Done"},
	}
	for _, status := range statuses {
		if err := db.Where("id = ?", status.ID).FirstOrCreate(&status).Error; err != nil {
			return fmt.Errorf("failed to seed task statuses: %w", err)
		}
	}
	return nil
}
