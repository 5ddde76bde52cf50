package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/patch"
)

// Columns a user update may touch. The password is handled separately by
// the controller, which hashes it into password_hash.
var userPatchColumns = []patch.Column{
	{Name: "email", Kind: patch.String},
	{Name: "first_name", Kind: patch.String},
	{Name: "last_name", Kind: patch.String},
	{Name: "role", Kind: patch.String},
	{Name: "is_active", Kind: patch.Bool},
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// PatchColumns returns the update allow-list for users.
func (r *UserRepository) PatchColumns() []patch.Column {
	return userPatchColumns
}

// FindAll retrieves all users, newest first. Password hashes are never read.
func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	result := r.db.Omit("password_hash").Order("created_at DESC").Find(&users)
	return users, result.Error
}

// FindByID retrieves a user by its ID without the password hash.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	result := r.db.Omit("password_hash").First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves the full row, including the password hash, for
// credential verification.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := r.db.First(&user, "email = ?", email)
	return user, result.Error
}

// Create inserts a new user. PasswordHash must already be set by the caller.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update applies a partial update. Returns false when no recognized fields
// were present.
func (r *UserRepository) Update(id uint, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	return true, result.Error
}

// Delete removes a user permanently.
func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// UpdateLastLogin stamps the login timestamp.
func (r *UserRepository) UpdateLastLogin(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}
