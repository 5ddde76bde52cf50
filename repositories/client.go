package repositories

import (
	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/patch"
)

var clientPatchColumns = []patch.Column{
	{Name: "name", Kind: patch.String},
	{Name: "contact_email", Kind: patch.String},
	{Name: "phone", Kind: patch.String},
	{Name: "address", Kind: patch.String},
}

const clientSelect = "clients.*, u.first_name AS created_first_name, u.last_name AS created_last_name"

// ClientRepository handles database operations for clients
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// PatchColumns returns the update allow-list for clients.
func (r *ClientRepository) PatchColumns() []patch.Column {
	return clientPatchColumns
}

func (r *ClientRepository) withJoins() *gorm.DB {
	return r.db.Model(&models.Client{}).
		Select(clientSelect).
		Joins("LEFT JOIN users u ON clients.created_by = u.id")
}

// FindAll retrieves all clients with creator names, newest first.
func (r *ClientRepository) FindAll() ([]models.Client, error) {
	var clients []models.Client
	result := r.withJoins().Order("clients.created_at DESC").Find(&clients)
	return clients, result.Error
}

// FindByID retrieves a client by its ID with creator names.
func (r *ClientRepository) FindByID(id uint) (models.Client, error) {
	var client models.Client
	result := r.withJoins().Where("clients.id = ?", id).First(&client)
	return client, result.Error
}

// Create inserts a new client.
func (r *ClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// Update applies a partial update. Returns false when no recognized fields
// were present.
func (r *ClientRepository) Update(id uint, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Client{}).Where("id = ?", id).Updates(fields)
	return true, result.Error
}

// Delete removes a client permanently.
func (r *ClientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Client{}, id).Error
}
