package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crmplanner/api/repositories"
)

// DashboardController serves the read-only aggregate views.
type DashboardController struct {
	dashboard *repositories.DashboardRepository
}

// NewDashboardController creates a dashboard controller
func NewDashboardController(dashboard *repositories.DashboardRepository) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// Summary handles GET /api/dashboard/summary
func (ctrl *DashboardController) Summary(c *gin.Context) {
	summary, err := ctrl.dashboard.Summary(time.Now().UTC())
	if err != nil {
		serverError(c, err, "Failed to fetch dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RecentTasks handles GET /api/dashboard/recent-tasks
func (ctrl *DashboardController) RecentTasks(c *gin.Context) {
	tasks, err := ctrl.dashboard.RecentTasks()
	if err != nil {
		serverError(c, err, "Failed to fetch recent tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ActiveProjects handles GET /api/dashboard/active-projects
func (ctrl *DashboardController) ActiveProjects(c *gin.Context) {
	projects, err := ctrl.dashboard.ActiveProjects()
	if err != nil {
		serverError(c, err, "Failed to fetch active projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Charts handles GET /api/dashboard/charts
func (ctrl *DashboardController) Charts(c *gin.Context) {
	charts, err := ctrl.dashboard.Charts(time.Now().UTC())
	if err != nil {
		serverError(c, err, "Failed to fetch dashboard charts")
		return
	}
	c.JSON(http.StatusOK, charts)
}

// MonthlyEarnings handles GET /api/dashboard/monthly-earnings?year=&month=.
// Year and month default to the current calendar month.
func (ctrl *DashboardController) MonthlyEarnings(c *gin.Context) {
	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
		month = parsed
	}

	earnings, err := ctrl.dashboard.MonthlyEarnings(year, month)
	if err != nil {
		serverError(c, err, "Failed to fetch monthly earnings")
		return
	}
	c.JSON(http.StatusOK, earnings)
}
