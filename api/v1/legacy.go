package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crmplanner/api/dto"
	"github.com/crmplanner/api/middleware"
)

// RegisterLegacyRoutes mounts the query-string surface at "/". It is a thin
// adapter: each ?action= request is translated onto the canonical
// controllers, so both surfaces share one implementation and one token
// scheme.
func (a *API) RegisterLegacyRoutes(router *gin.Engine) {
	handler := a.legacyHandler()
	router.Any("/", handler)
}

func (a *API) legacyHandler() gin.HandlerFunc {
	authGate := middleware.Auth(a.authService)

	return func(c *gin.Context) {
		action := c.Query("action")

		// login and register are the only unauthenticated actions.
		switch action {
		case "login":
			if c.Request.Method == http.MethodPost {
				a.auth.Login(c)
				return
			}
		case "register":
			if c.Request.Method == http.MethodPost {
				a.auth.Register(c)
				return
			}
		default:
			authGate(c)
			if c.IsAborted() {
				return
			}
			a.dispatchLegacy(c, action)
			return
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	}
}

func (a *API) dispatchLegacy(c *gin.Context, action string) {
	switch action {
	case "tasks":
		a.legacyTasks(c)
	case "users":
		legacyResource(c, a.users.Index, a.users.Show, a.users.Store, a.users.Update, a.legacyUserDestroy)
	case "clients":
		legacyResource(c, a.clients.Index, a.clients.Show, a.clients.Store, a.clients.Update, a.clients.Destroy)
	case "projects":
		legacyResource(c, a.projects.Index, a.projects.Show, a.projects.Store, a.projects.Update, a.projects.Destroy)
	case "dashboard_summary":
		a.dashboard.Summary(c)
	case "recent_tasks":
		a.dashboard.RecentTasks(c)
	case "active_projects":
		a.dashboard.ActiveProjects(c)
	case "dashboard_charts":
		a.dashboard.Charts(c)
	case "monthly_earnings":
		a.dashboard.MonthlyEarnings(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	}
}

// legacyTasks adds the task-only verbs (restore, permanent delete, trash
// listing) on top of the shared resource shape.
func (a *API) legacyTasks(c *gin.Context) {
	if c.Request.Method == http.MethodPost && c.Query("restore") == "true" {
		if c.Query("id") == "" {
			// Older clients send the ID in the body instead.
			var req dto.RestoreTaskRequest
			if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
				c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
				return
			}
			setLegacyID(c, req.ID)
		} else if !queryToParam(c) {
			return
		}
		a.tasks.Restore(c)
		return
	}
	legacyResource(c, a.tasks.Index, a.tasks.Show, a.tasks.Store, a.tasks.Update, a.tasks.Destroy)
}

// legacyUserDestroy keeps the admin gate on the legacy surface.
func (a *API) legacyUserDestroy(c *gin.Context) {
	middleware.AdminOnly()(c)
	if c.IsAborted() {
		return
	}
	a.users.Destroy(c)
}

// legacyResource maps HTTP verbs plus an optional ?id= onto controller
// actions. GET without an id lists; PUT and DELETE require one.
func legacyResource(c *gin.Context, index, show, store, update, destroy gin.HandlerFunc) {
	switch c.Request.Method {
	case http.MethodGet:
		if c.Query("id") == "" {
			index(c)
			return
		}
		if queryToParam(c) {
			show(c)
		}
	case http.MethodPost:
		store(c)
	case http.MethodPut:
		if queryToParam(c) {
			update(c)
		}
	case http.MethodDelete:
		if queryToParam(c) {
			destroy(c)
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	}
}

// queryToParam copies ?id= into the id path parameter the controllers read.
// Missing IDs fall through to the router's 404 body; non-numeric values are
// rejected by parseID inside the controller.
func queryToParam(c *gin.Context) bool {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return false
	}
	c.Params = append(c.Params, gin.Param{Key: "id", Value: id})
	return true
}

func setLegacyID(c *gin.Context, id uint) {
	c.Params = append(c.Params, gin.Param{Key: "id", Value: strconv.FormatUint(uint64(id), 10)})
}
