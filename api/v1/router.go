package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crmplanner/api/config"
	"github.com/crmplanner/api/middleware"
	"github.com/crmplanner/api/repositories"
	"github.com/crmplanner/api/services"
)

// API wires repositories, services and controllers around one injected
// database handle and registers them on a gin engine.
type API struct {
	authService *services.AuthService

	auth      *AuthController
	users     *UserController
	tasks     *TaskController
	clients   *ClientController
	projects  *ProjectController
	tags      *TagController
	comments  *CommentController
	dashboard *DashboardController
}

// NewAPI builds the full controller graph on top of db.
func NewAPI(db *gorm.DB, jwtConfig config.JWTConfig) *API {
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)

	authService := services.NewAuthService(userRepo, jwtConfig)

	return &API{
		authService: authService,
		auth:        NewAuthController(authService),
		users:       NewUserController(userRepo, authService),
		tasks:       NewTaskController(taskRepo, tagRepo),
		clients:     NewClientController(clientRepo),
		projects:    NewProjectController(projectRepo),
		tags:        NewTagController(tagRepo),
		comments:    NewCommentController(commentRepo, taskRepo),
		dashboard:   NewDashboardController(dashboardRepo),
	}
}

// RegisterRoutes mounts the canonical /api surface.
func (a *API) RegisterRoutes(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.POST("/register", a.auth.Register)
	api.POST("/login", a.auth.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(a.authService))
	{
		protected.GET("/users", a.users.Index)
		protected.GET("/users/:id", a.users.Show)
		protected.POST("/users", a.users.Store)
		protected.PUT("/users/:id", a.users.Update)
		protected.DELETE("/users/:id", middleware.AdminOnly(), a.users.Destroy)

		protected.GET("/tasks", a.tasks.Index)
		protected.GET("/tasks/:id", a.tasks.Show)
		protected.POST("/tasks", a.tasks.Store)
		protected.PUT("/tasks/:id", a.tasks.Update)
		protected.DELETE("/tasks/:id", a.tasks.Destroy)
		protected.POST("/tasks/:id/restore", a.tasks.Restore)
		protected.POST("/tasks/:id/tags/:tagId", a.tasks.AttachTag)
		protected.DELETE("/tasks/:id/tags/:tagId", a.tasks.DetachTag)
		protected.GET("/tasks/:id/comments", a.comments.ListByTask)

		protected.GET("/clients", a.clients.Index)
		protected.GET("/clients/:id", a.clients.Show)
		protected.POST("/clients", a.clients.Store)
		protected.PUT("/clients/:id", a.clients.Update)
		protected.DELETE("/clients/:id", a.clients.Destroy)

		protected.GET("/projects", a.projects.Index)
		protected.GET("/projects/:id", a.projects.Show)
		protected.POST("/projects", a.projects.Store)
		protected.PUT("/projects/:id", a.projects.Update)
		protected.DELETE("/projects/:id", a.projects.Destroy)

		protected.GET("/tags", a.tags.Index)
		protected.GET("/tags/:id", a.tags.Show)
		protected.POST("/tags", a.tags.Store)
		protected.PUT("/tags/:id", a.tags.Update)
		protected.DELETE("/tags/:id", a.tags.Destroy)

		protected.GET("/comments", a.comments.Index)
		protected.GET("/comments/:id", a.comments.Show)
		protected.POST("/comments", a.comments.Store)
		protected.PUT("/comments/:id", a.comments.Update)
		protected.DELETE("/comments/:id", a.comments.Destroy)

		protected.GET("/dashboard/summary", a.dashboard.Summary)
		protected.GET("/dashboard/recent-tasks", a.dashboard.RecentTasks)
		protected.GET("/dashboard/active-projects", a.dashboard.ActiveProjects)
		protected.GET("/dashboard/charts", a.dashboard.Charts)
		protected.GET("/dashboard/monthly-earnings", a.dashboard.MonthlyEarnings)
	}
}
