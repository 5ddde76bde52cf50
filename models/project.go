package models

import (
	"time"
)

// Project status values.
const (
	ProjectStatusActive    = "Active"
	ProjectStatusCompleted = "Completed"
	ProjectStatusArchived  = "Archived"
)

// Project represents a billable engagement, optionally linked to a client
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description"`
	Status      string    `json:"status" gorm:"type:varchar(10);default:'Active'"`
	Priority    string    `json:"priority" gorm:"type:varchar(10);default:'Medium'"`
	StartDate   *Date     `json:"start_date"`
	EndDate     *Date     `json:"end_date"`
	ClientID    *uint     `json:"client_id" gorm:"index"`
	HourlyRate  *float64  `json:"hourly_rate"`
	CreatedBy   uint      `json:"created_by" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined display fields, populated by repository reads.
	ClientName       *string `json:"client_name,omitempty" gorm:"-:migration;->"`
	CreatedFirstName *string `json:"created_first_name,omitempty" gorm:"-:migration;->"`
	CreatedLastName  *string `json:"created_last_name,omitempty" gorm:"-:migration;->"`
}
