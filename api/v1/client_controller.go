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

// ClientController handles client CRUD. Clients are shared records: the
// models.AnyUserMayManageClients rule governs who may mutate them.
type ClientController struct {
	clients *repositories.ClientRepository
}

// NewClientController creates a client controller
func NewClientController(clients *repositories.ClientRepository) *ClientController {
	return &ClientController{clients: clients}
}

func (ctrl *ClientController) mayManage(c *gin.Context) bool {
	if models.AnyUserMayManageClients || isAdmin(c) {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	return false
}

// Index handles GET /api/clients
func (ctrl *ClientController) Index(c *gin.Context) {
	clients, err := ctrl.clients.FindAll()
	if err != nil {
		serverError(c, err, "Failed to fetch clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// Show handles GET /api/clients/:id
func (ctrl *ClientController) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	client, err := ctrl.clients.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		serverError(c, err, "Failed to fetch client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// Store handles POST /api/clients
func (ctrl *ClientController) Store(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	client := models.Client{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
		CreatedBy:    currentUserID(c),
	}
	if err := ctrl.clients.Create(&client); err != nil {
		serverError(c, err, "Failed to create client")
		return
	}

	created, err := ctrl.clients.FindByID(client.ID)
	if err != nil {
		serverError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/clients/:id
func (ctrl *ClientController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !ctrl.mayManage(c) {
		return
	}

	if _, err := ctrl.clients.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		serverError(c, err, "Failed to update client")
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields, err := patch.Build(input, ctrl.clients.PatchColumns())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := ctrl.clients.Update(id, fields); err != nil {
		serverError(c, err, "Failed to update client")
		return
	}

	client, err := ctrl.clients.FindByID(id)
	if err != nil {
		serverError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// Destroy handles DELETE /api/clients/:id
func (ctrl *ClientController) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !ctrl.mayManage(c) {
		return
	}

	if _, err := ctrl.clients.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		serverError(c, err, "Failed to delete client")
		return
	}

	if err := ctrl.clients.Delete(id); err != nil {
		serverError(c, err, "Failed to delete client")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
