package models

import (
	"time"
)

// Client represents a customer record
type Client struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	ContactEmail *string   `json:"contact_email"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	CreatedBy    uint      `json:"created_by" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined display fields, populated by repository reads.
	CreatedFirstName *string `json:"created_first_name,omitempty" gorm:"-:migration;->"`
	CreatedLastName  *string `json:"created_last_name,omitempty" gorm:"-:migration;->"`
}
