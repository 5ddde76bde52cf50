package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crmplanner/api/dto"
	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/patch"
	"github.com/crmplanner/api/repositories"
)

// ProjectController handles project CRUD. Like clients, projects follow the
// models.AnyUserMayManageProjects rule.
type ProjectController struct {
	projects *repositories.ProjectRepository
}

// NewProjectController creates a project controller
func NewProjectController(projects *repositories.ProjectRepository) *ProjectController {
	return &ProjectController{projects: projects}
}

func (ctrl *ProjectController) mayManage(c *gin.Context) bool {
	if models.AnyUserMayManageProjects || isAdmin(c) {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	return false
}

// Index handles GET /api/projects
func (ctrl *ProjectController) Index(c *gin.Context) {
	projects, err := ctrl.projects.FindAll()
	if err != nil {
		serverError(c, err, "Failed to fetch projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Show handles GET /api/projects/:id
func (ctrl *ProjectController) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := ctrl.projects.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		serverError(c, err, "Failed to fetch project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// Store handles POST /api/projects
func (ctrl *ProjectController) Store(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		HourlyRate:  req.HourlyRate,
		CreatedBy:   currentUserID(c),
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Priority != nil {
		project.Priority = *req.Priority
	}
	if req.StartDate != nil {
		start, err := models.ParseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for start_date"})
			return
		}
		project.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := models.ParseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for end_date"})
			return
		}
		project.EndDate = &end
	}

	if err := ctrl.projects.Create(&project); err != nil {
		serverError(c, err, "Failed to create project")
		return
	}

	created, err := ctrl.projects.FindByID(project.ID)
	if err != nil {
		serverError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/projects/:id
func (ctrl *ProjectController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !ctrl.mayManage(c) {
		return
	}

	if _, err := ctrl.projects.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		serverError(c, err, "Failed to update project")
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields, err := patch.Build(input, ctrl.projects.PatchColumns())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := ctrl.projects.Update(id, fields); err != nil {
		serverError(c, err, "Failed to update project")
		return
	}

	project, err := ctrl.projects.FindByID(id)
	if err != nil {
		serverError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// Destroy handles DELETE /api/projects/:id
func (ctrl *ProjectController) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !ctrl.mayManage(c) {
		return
	}

	if _, err := ctrl.projects.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		serverError(c, err, "Failed to delete project")
		return
	}

	if err := ctrl.projects.Delete(id); err != nil {
		serverError(c, err, "Failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
