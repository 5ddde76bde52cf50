package models

// Tag is a label attachable to tasks (many-to-many via task_tags).
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Color string `json:"color" gorm:"type:varchar(7);default:'#007bff'"`
}
