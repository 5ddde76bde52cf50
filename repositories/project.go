package repositories

import (
	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/patch"
)

var projectPatchColumns = []patch.Column{
	{Name: "title", Kind: patch.String},
	{Name: "description", Kind: patch.String},
	{Name: "status", Kind: patch.String},
	{Name: "priority", Kind: patch.String},
	{Name: "start_date", Kind: patch.Date},
	{Name: "end_date", Kind: patch.Date},
	{Name: "client_id", Kind: patch.Int},
	{Name: "hourly_rate", Kind: patch.Float},
}

const projectSelect = "projects.*, c.name AS client_name, " +
	"u.first_name AS created_first_name, u.last_name AS created_last_name"

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// PatchColumns returns the update allow-list for projects.
func (r *ProjectRepository) PatchColumns() []patch.Column {
	return projectPatchColumns
}

func (r *ProjectRepository) withJoins() *gorm.DB {
	return r.db.Model(&models.Project{}).
		Select(projectSelect).
		Joins("LEFT JOIN clients c ON projects.client_id = c.id").
		Joins("LEFT JOIN users u ON projects.created_by = u.id")
}

// FindAll retrieves all projects with client and creator names, newest first.
func (r *ProjectRepository) FindAll() ([]models.Project, error) {
	var projects []models.Project
	result := r.withJoins().Order("projects.created_at DESC").Find(&projects)
	return projects, result.Error
}

// FindByID retrieves a project by its ID with client and creator names.
func (r *ProjectRepository) FindByID(id uint) (models.Project, error) {
	var project models.Project
	result := r.withJoins().Where("projects.id = ?", id).First(&project)
	return project, result.Error
}

// Create inserts a new project.
func (r *ProjectRepository) Create(project *models.Project) error {
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	if project.Priority == "" {
		project.Priority = "Medium"
	}
	return r.db.Create(project).Error
}

// Update applies a partial update. Returns false when no recognized fields
// were present.
func (r *ProjectRepository) Update(id uint, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	return true, result.Error
}

// Delete removes a project permanently.
func (r *ProjectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}
