package repositories

import (
	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
)

const commentSelect = "comments.*, u.first_name, u.last_name, u.email"

// CommentRepository handles database operations for task comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) withJoins() *gorm.DB {
	return r.db.Model(&models.Comment{}).
		Select(commentSelect).
		Joins("LEFT JOIN users u ON comments.user_id = u.id")
}

// FindByTaskID retrieves a task's comments with author names, oldest first.
func (r *CommentRepository) FindByTaskID(taskID uint) ([]models.Comment, error) {
	var comments []models.Comment
	result := r.withJoins().
		Where("comments.task_id = ?", taskID).
		Order("comments.created_at ASC").
		Find(&comments)
	return comments, result.Error
}

// FindByID retrieves a comment by its ID with author names.
func (r *CommentRepository) FindByID(id uint) (models.Comment, error) {
	var comment models.Comment
	result := r.withJoins().Where("comments.id = ?", id).First(&comment)
	return comment, result.Error
}

// Create inserts a new comment.
func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// UpdateContent replaces a comment's content.
func (r *CommentRepository) UpdateContent(id uint, content string) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		Update("content", content).Error
}

// Delete removes a comment permanently.
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
