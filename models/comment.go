package models

import (
	"time"
)

// Comment is a note left on a task. Only the author or an admin may
// modify or delete it.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	// Joined display fields, populated by repository reads.
	FirstName *string `json:"first_name,omitempty" gorm:"-:migration;->"`
	LastName  *string `json:"last_name,omitempty" gorm:"-:migration;->"`
	Email     *string `json:"email,omitempty" gorm:"-:migration;->"`
}
