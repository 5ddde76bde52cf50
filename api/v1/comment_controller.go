package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crmplanner/api/dto"
	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/repositories"
)

// CommentController handles task comments. Mutations require the caller to
// be the comment's author or an admin.
type CommentController struct {
	comments *repositories.CommentRepository
	tasks    *repositories.TaskRepository
}

// NewCommentController creates a comment controller
func NewCommentController(comments *repositories.CommentRepository, tasks *repositories.TaskRepository) *CommentController {
	return &CommentController{comments: comments, tasks: tasks}
}

func mayTouchComment(c *gin.Context, comment models.Comment) bool {
	return comment.UserID == currentUserID(c) || isAdmin(c)
}

// Index handles GET /api/comments?task_id=N
func (ctrl *CommentController) Index(c *gin.Context) {
	taskID := queryUint(c, "task_id")
	if taskID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}
	ctrl.listForTask(c, *taskID)
}

// ListByTask handles GET /api/tasks/:id/comments
func (ctrl *CommentController) ListByTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctrl.listForTask(c, taskID)
}

func (ctrl *CommentController) listForTask(c *gin.Context, taskID uint) {
	if _, err := ctrl.tasks.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to fetch comments")
		return
	}

	comments, err := ctrl.comments.FindByTaskID(taskID)
	if err != nil {
		serverError(c, err, "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Show handles GET /api/comments/:id
func (ctrl *CommentController) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := ctrl.comments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		serverError(c, err, "Failed to fetch comment")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Store handles POST /api/comments
func (ctrl *CommentController) Store(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.TaskID == 0 || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID and content are required"})
		return
	}

	if _, err := ctrl.tasks.FindByID(req.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		serverError(c, err, "Failed to create comment")
		return
	}

	comment := models.Comment{
		TaskID:  req.TaskID,
		UserID:  currentUserID(c),
		Content: req.Content,
	}
	if err := ctrl.comments.Create(&comment); err != nil {
		serverError(c, err, "Failed to create comment")
		return
	}

	created, err := ctrl.comments.FindByID(comment.ID)
	if err != nil {
		serverError(c, err, "Failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/comments/:id
func (ctrl *CommentController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := ctrl.comments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		serverError(c, err, "Failed to update comment")
		return
	}

	if !mayTouchComment(c, comment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if err := ctrl.comments.UpdateContent(id, req.Content); err != nil {
		serverError(c, err, "Failed to update comment")
		return
	}

	updated, err := ctrl.comments.FindByID(id)
	if err != nil {
		serverError(c, err, "Failed to update comment")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Destroy handles DELETE /api/comments/:id
func (ctrl *CommentController) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := ctrl.comments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		serverError(c, err, "Failed to delete comment")
		return
	}

	if !mayTouchComment(c, comment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := ctrl.comments.Delete(id); err != nil {
		serverError(c, err, "Failed to delete comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
