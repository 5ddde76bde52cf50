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

// TaskController handles task CRUD, trash/restore and tag links.
type TaskController struct {
	tasks *repositories.TaskRepository
	tags  *repositories.TagRepository
}

// NewTaskController creates a task controller
func NewTaskController(tasks *repositories.TaskRepository, tags *repositories.TagRepository) *TaskController {
	return &TaskController{tasks: tasks, tags: tags}
}

// Index handles GET /api/tasks. ?deleted=true lists the trash instead;
// status_id, project_id and assigned_to filters are AND-combined.
func (ctrl *TaskController) Index(c *gin.Context) {
	if c.Query("deleted") == "true" {
		tasks, err := ctrl.tasks.FindTrashed()
		if err != nil {
			serverError(c, err, "Failed to fetch tasks")
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}

	filters := repositories.TaskFilters{
		StatusID:   queryUint(c, "status_id"),
		ProjectID:  queryUint(c, "project_id"),
		AssignedTo: queryUint(c, "assigned_to"),
	}

	tasks, err := ctrl.tasks.FindAll(filters)
	if err != nil {
		serverError(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Show handles GET /api/tasks/:id
func (ctrl *TaskController) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := ctrl.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to fetch task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// Store handles POST /api/tasks
func (ctrl *TaskController) Store(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	task := models.Task{
		Title:          req.Title,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		AssignedTo:     req.AssignedTo,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		CreatedBy:      currentUserID(c),
	}
	if req.StatusID != nil {
		task.StatusID = *req.StatusID
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		due, err := models.ParseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for due_date"})
			return
		}
		task.DueDate = &due
	}

	if err := ctrl.tasks.Create(&task); err != nil {
		serverError(c, err, "Failed to create task")
		return
	}

	if len(req.TagIDs) > 0 {
		if err := ctrl.tags.ReplaceForTask(task.ID, req.TagIDs); err != nil {
			serverError(c, err, "Failed to create task")
			return
		}
	}

	created, err := ctrl.tasks.FindByID(task.ID)
	if err != nil {
		serverError(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/tasks/:id. A tag_ids key, when present (even
// empty), replaces the task's tag set wholesale.
func (ctrl *TaskController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.tasks.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to update task")
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields, err := patch.Build(input, ctrl.tasks.PatchColumns())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tagIDs, replaceTags, err := extractTagIDs(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for tag_ids"})
		return
	}

	if _, err := ctrl.tasks.Update(id, fields); err != nil {
		serverError(c, err, "Failed to update task")
		return
	}

	if replaceTags {
		if err := ctrl.tags.ReplaceForTask(id, tagIDs); err != nil {
			serverError(c, err, "Failed to update task")
			return
		}
	}

	task, err := ctrl.tasks.FindByID(id)
	if err != nil {
		serverError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// extractTagIDs reads an optional tag_ids array from the raw body. The
// second return reports whether the key was present at all.
func extractTagIDs(input map[string]interface{}) ([]uint, bool, error) {
	raw, present := input["tag_ids"]
	if !present {
		return nil, false, nil
	}
	if raw == nil {
		return nil, true, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, true, errors.New("tag_ids must be an array")
	}
	ids := make([]uint, 0, len(list))
	for _, item := range list {
		f, ok := item.(float64)
		if !ok || f < 0 {
			return nil, true, errors.New("tag_ids must be an array of IDs")
		}
		ids = append(ids, uint(f))
	}
	return ids, true, nil
}

// Destroy handles DELETE /api/tasks/:id. Deletion is soft unless
// ?permanent=true, which also removes the task's tag links.
func (ctrl *TaskController) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.tasks.FindAnyByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to delete task")
		return
	}

	permanent := c.Query("permanent") == "true"
	if err := ctrl.tasks.Delete(id, permanent); err != nil {
		serverError(c, err, "Failed to delete task")
		return
	}

	if permanent {
		c.JSON(http.StatusOK, gin.H{"message": "Task permanently deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Restore handles POST /api/tasks/:id/restore
func (ctrl *TaskController) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.tasks.FindAnyByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to restore task")
		return
	}

	if err := ctrl.tasks.Restore(id); err != nil {
		serverError(c, err, "Failed to restore task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task restored successfully"})
}

// AttachTag handles POST /api/tasks/:id/tags/:tagId
func (ctrl *TaskController) AttachTag(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tagId")
	if !ok {
		return
	}

	if _, err := ctrl.tasks.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to attach tag")
		return
	}

	if err := ctrl.tags.AttachToTask(taskID, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		serverError(c, err, "Failed to attach tag")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag attached successfully"})
}

// DetachTag handles DELETE /api/tasks/:id/tags/:tagId
func (ctrl *TaskController) DetachTag(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tagId")
	if !ok {
		return
	}

	if _, err := ctrl.tasks.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to detach tag")
		return
	}

	if err := ctrl.tags.DetachFromTask(taskID, tagID); err != nil {
		serverError(c, err, "Failed to detach tag")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag detached successfully"})
}
