package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crmplanner/api/dto"
	"github.com/crmplanner/api/patch"
	"github.com/crmplanner/api/repositories"
	"github.com/crmplanner/api/services"
)

// UserController handles user management endpoints.
type UserController struct {
	users *repositories.UserRepository
	auth  *services.AuthService
}

// NewUserController creates a user controller
func NewUserController(users *repositories.UserRepository, auth *services.AuthService) *UserController {
	return &UserController{users: users, auth: auth}
}

// Index handles GET /api/users
func (ctrl *UserController) Index(c *gin.Context) {
	users, err := ctrl.users.FindAll()
	if err != nil {
		serverError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Show handles GET /api/users/:id
func (ctrl *UserController) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		serverError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Store handles POST /api/users
func (ctrl *UserController) Store(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, first name and last name are required"})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	user, err := ctrl.auth.Register(dto.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		serverError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Update handles PUT /api/users/:id. Users may edit their own profile;
// admins may edit anyone. Role and activation changes are admin-only.
func (ctrl *UserController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if id != currentUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	if _, err := ctrl.users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		serverError(c, err, "Failed to update user")
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !isAdmin(c) {
		delete(input, "role")
		delete(input, "is_active")
	}

	fields, err := patch.Build(input, ctrl.users.PatchColumns())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if password, present := input["password"]; present {
		plain, isString := password.(string)
		if !isString || len(plain) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}
		hash, err := ctrl.auth.HashPassword(plain)
		if err != nil {
			serverError(c, err, "Failed to update user")
			return
		}
		fields["password_hash"] = hash
	}

	if _, err := ctrl.users.Update(id, fields); err != nil {
		serverError(c, err, "Failed to update user")
		return
	}

	user, err := ctrl.users.FindByID(id)
	if err != nil {
		serverError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Destroy handles DELETE /api/users/:id, admin only.
func (ctrl *UserController) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		serverError(c, err, "Failed to delete user")
		return
	}

	if err := ctrl.users.Delete(id); err != nil {
		serverError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
