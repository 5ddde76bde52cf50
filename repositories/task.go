package repositories

import (
	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/patch"
)

var taskPatchColumns = []patch.Column{
	{Name: "title", Kind: patch.String},
	{Name: "description", Kind: patch.String},
	{Name: "status_id", Kind: patch.Int},
	{Name: "priority", Kind: patch.String},
	{Name: "project_id", Kind: patch.Int},
	{Name: "assigned_to", Kind: patch.Int},
	{Name: "due_date", Kind: patch.Date},
	{Name: "estimated_hours", Kind: patch.Float},
	{Name: "actual_hours", Kind: patch.Float},
}

const taskSelect = "tasks.*, ts.name AS status_name, p.title AS project_title, " +
	"u1.first_name AS assigned_first_name, u1.last_name AS assigned_last_name, " +
	"u2.first_name AS created_first_name, u2.last_name AS created_last_name"

// TaskFilters are the optional, AND-combined listing filters.
type TaskFilters struct {
	StatusID   *uint
	ProjectID  *uint
	AssignedTo *uint
}

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// PatchColumns returns the update allow-list for tasks.
func (r *TaskRepository) PatchColumns() []patch.Column {
	return taskPatchColumns
}

func (r *TaskRepository) withJoins(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Task{}).
		Select(taskSelect).
		Joins("LEFT JOIN task_statuses ts ON tasks.status_id = ts.id").
		Joins("LEFT JOIN projects p ON tasks.project_id = p.id").
		Joins("LEFT JOIN users u1 ON tasks.assigned_to = u1.id").
		Joins("LEFT JOIN users u2 ON tasks.created_by = u2.id").
		Preload("Tags")
}

// FindAll retrieves non-deleted tasks with display fields and tags,
// newest-created first.
func (r *TaskRepository) FindAll(filters TaskFilters) ([]models.Task, error) {
	query := r.withJoins(r.db)
	if filters.StatusID != nil {
		query = query.Where("tasks.status_id = ?", *filters.StatusID)
	}
	if filters.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filters.ProjectID)
	}
	if filters.AssignedTo != nil {
		query = query.Where("tasks.assigned_to = ?", *filters.AssignedTo)
	}

	var tasks []models.Task
	result := query.Order("tasks.created_at DESC").Find(&tasks)
	return tasks, result.Error
}

// FindTrashed retrieves soft-deleted tasks, most recently deleted first.
func (r *TaskRepository) FindTrashed() ([]models.Task, error) {
	var tasks []models.Task
	result := r.withJoins(r.db.Unscoped()).
		Where("tasks.deleted_at IS NOT NULL").
		Order("tasks.deleted_at DESC").
		Find(&tasks)
	return tasks, result.Error
}

// FindByID retrieves a non-deleted task with display fields and tags.
func (r *TaskRepository) FindByID(id uint) (models.Task, error) {
	var task models.Task
	result := r.withJoins(r.db).Where("tasks.id = ?", id).First(&task)
	return task, result.Error
}

// FindAnyByID retrieves a task regardless of its soft-delete state. Used
// by restore and permanent delete.
func (r *TaskRepository) FindAnyByID(id uint) (models.Task, error) {
	var task models.Task
	result := r.withJoins(r.db.Unscoped()).Where("tasks.id = ?", id).First(&task)
	return task, result.Error
}

// Create inserts a new task, applying the column defaults for omitted
// optional fields (status "To Do", priority "Medium").
func (r *TaskRepository) Create(task *models.Task) error {
	if task.StatusID == 0 {
		task.StatusID = models.TaskStatusToDo
	}
	if task.Priority == "" {
		task.Priority = "Medium"
	}
	return r.db.Omit("Tags").Create(task).Error
}

// Update applies a partial update. Returns false when no recognized fields
// were present.
func (r *TaskRepository) Update(id uint, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields)
	return true, result.Error
}

// Delete soft-deletes a task, or removes it and its tag links entirely
// when permanent is set.
func (r *TaskRepository) Delete(id uint, permanent bool) error {
	if !permanent {
		return r.db.Delete(&models.Task{}, id).Error
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Task{}, id).Error
	})
}

// Restore clears the soft-delete marker, returning the task to all default
// listings.
func (r *TaskRepository) Restore(id uint) error {
	return r.db.Unscoped().Model(&models.Task{}).Where("id = ?", id).
		Update("deleted_at", nil).Error
}
