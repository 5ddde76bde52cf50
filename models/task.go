package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses seeded in the task_statuses lookup table.
const (
	TaskStatusToDo       uint = 1
	TaskStatusInProgress uint = 2
	TaskStatusDone       uint = 3
)

// TaskStatus is the static status lookup (To Do / In Progress / Done).
type TaskStatus struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

// Task represents a unit of work. Deletion is soft by default: DeletedAt
// hides the row from all default queries while keeping it restorable.
type Task struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"not null"`
	Description    *string        `json:"description"`
	StatusID       uint           `json:"status_id" gorm:"not null;default:1"`
	Priority       string         `json:"priority" gorm:"type:varchar(10);default:'Medium'"`
	ProjectID      *uint          `json:"project_id" gorm:"index"`
	AssignedTo     *uint          `json:"assigned_to" gorm:"index"`
	DueDate        *Date          `json:"due_date"`
	EstimatedHours *float64       `json:"estimated_hours"`
	ActualHours    *float64       `json:"actual_hours"`
	CreatedBy      uint           `json:"created_by" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// Joined display fields, populated by repository reads.
	StatusName        string  `json:"status_name,omitempty" gorm:"-:migration;->"`
	ProjectTitle      *string `json:"project_title,omitempty" gorm:"-:migration;->"`
	AssignedFirstName *string `json:"assigned_first_name,omitempty" gorm:"-:migration;->"`
	AssignedLastName  *string `json:"assigned_last_name,omitempty" gorm:"-:migration;->"`
	CreatedFirstName  *string `json:"created_first_name,omitempty" gorm:"-:migration;->"`
	CreatedLastName   *string `json:"created_last_name,omitempty" gorm:"-:migration;->"`

	Tags []Tag `json:"tags" gorm:"many2many:task_tags"`
}
