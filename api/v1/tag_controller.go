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

// TagController handles tag CRUD.
type TagController struct {
	tags *repositories.TagRepository
}

// NewTagController creates a tag controller
func NewTagController(tags *repositories.TagRepository) *TagController {
	return &TagController{tags: tags}
}

// Index handles GET /api/tags
func (ctrl *TagController) Index(c *gin.Context) {
	tags, err := ctrl.tags.FindAll()
	if err != nil {
		serverError(c, err, "Failed to fetch tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// Show handles GET /api/tags/:id
func (ctrl *TagController) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tags.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		serverError(c, err, "Failed to fetch tag")
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Store handles POST /api/tags
func (ctrl *TagController) Store(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	tag := models.Tag{Name: req.Name, Color: req.Color}
	if err := ctrl.tags.Create(&tag); err != nil {
		serverError(c, err, "Failed to create tag")
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// Update handles PUT /api/tags/:id
func (ctrl *TagController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.tags.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		serverError(c, err, "Failed to update tag")
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields, err := patch.Build(input, ctrl.tags.PatchColumns())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := ctrl.tags.Update(id, fields); err != nil {
		serverError(c, err, "Failed to update tag")
		return
	}

	tag, err := ctrl.tags.FindByID(id)
	if err != nil {
		serverError(c, err, "Failed to update tag")
		return
	}
	c.JSON(http.StatusOK, tag)
}

// Destroy handles DELETE /api/tags/:id, removing the tag's task links too.
func (ctrl *TagController) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.tags.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		serverError(c, err, "Failed to delete tag")
		return
	}

	if err := ctrl.tags.Delete(id); err != nil {
		serverError(c, err, "Failed to delete tag")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
