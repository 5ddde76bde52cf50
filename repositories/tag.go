package repositories

import (
	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/patch"
)

var tagPatchColumns = []patch.Column{
	{Name: "name", Kind: patch.String},
	{Name: "color", Kind: patch.String},
}

// TagRepository handles database operations for tags and their task links
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// PatchColumns returns the update allow-list for tags.
func (r *TagRepository) PatchColumns() []patch.Column {
	return tagPatchColumns
}

// FindAll retrieves all tags ordered by name.
func (r *TagRepository) FindAll() ([]models.Tag, error) {
	var tags []models.Tag
	result := r.db.Order("name").Find(&tags)
	return tags, result.Error
}

// FindByID retrieves a tag by its ID.
func (r *TagRepository) FindByID(id uint) (models.Tag, error) {
	var tag models.Tag
	result := r.db.First(&tag, "id = ?", id)
	return tag, result.Error
}

// FindByTaskID retrieves the tags attached to a task, ordered by name.
func (r *TagRepository) FindByTaskID(taskID uint) ([]models.Tag, error) {
	var tags []models.Tag
	result := r.db.Model(&models.Tag{}).
		Joins("INNER JOIN task_tags tt ON tags.id = tt.tag_id").
		Where("tt.task_id = ?", taskID).
		Order("tags.name").
		Find(&tags)
	return tags, result.Error
}

// Create inserts a new tag.
func (r *TagRepository) Create(tag *models.Tag) error {
	if tag.Color == "" {
		tag.Color = "#007bff"
	}
	return r.db.Create(tag).Error
}

// Update applies a partial update. Returns false when no recognized fields
// were present.
func (r *TagRepository) Update(id uint, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Tag{}).Where("id = ?", id).Updates(fields)
	return true, result.Error
}

// Delete removes a tag and all of its task links.
func (r *TagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// AttachToTask links a tag to a task. Attaching an already-attached tag is
// a no-op, not an error.
func (r *TagRepository) AttachToTask(taskID, tagID uint) error {
	tag, err := r.FindByID(tagID)
	if err != nil {
		return err
	}
	return r.db.Model(&models.Task{ID: taskID}).Association("Tags").Append(&tag)
}

// DetachFromTask removes the link between a tag and a task if present.
func (r *TagRepository) DetachFromTask(taskID, tagID uint) error {
	return r.db.Model(&models.Task{ID: taskID}).Association("Tags").Delete(&models.Tag{ID: tagID})
}

// ReplaceForTask replaces a task's tag set wholesale: tags not in ids are
// detached, missing ones attached. Unknown tag IDs are ignored.
func (r *TagRepository) ReplaceForTask(taskID uint, ids []uint) error {
	assoc := r.db.Model(&models.Task{ID: taskID}).Association("Tags")
	if len(ids) == 0 {
		return assoc.Clear()
	}
	var tags []models.Tag
	if err := r.db.Find(&tags, ids).Error; err != nil {
		return err
	}
	return assoc.Replace(&tags)
}
