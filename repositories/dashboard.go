package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
)

// Summary is the headline dashboard payload.
type Summary struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	ActiveProjects int64   `json:"active_projects"`
	TotalProjects  int64   `json:"total_projects"`
	OverdueTasks   int64   `json:"overdue_tasks"`
	TotalClients   int64   `json:"total_clients"`
	TotalUsers     int64   `json:"total_users"`
	AvgTaskHours   float64 `json:"avg_task_hours"`
	EarningsMonth  float64 `json:"earnings_month"`
}

// ActiveProject is a project row with computed task progress counts.
type ActiveProject struct {
	ID             uint         `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	Status         string       `json:"status"`
	Priority       string       `json:"priority"`
	StartDate      *models.Date `json:"start_date"`
	EndDate        *models.Date `json:"end_date"`
	ClientID       *uint        `json:"client_id"`
	HourlyRate     *float64     `json:"hourly_rate"`
	CreatedAt      time.Time    `json:"created_at"`
	ClientName     *string      `json:"client_name"`
	TotalTasks     int64        `json:"total_tasks"`
	CompletedTasks int64        `json:"completed_tasks"`
}

// StatusCount is one slice of the tasks-by-status chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ProjectCount is one slice of the tasks-by-project chart.
type ProjectCount struct {
	Project string `json:"project"`
	Count   int64  `json:"count"`
}

// Deadline is an upcoming due task.
type Deadline struct {
	ID      uint         `json:"id"`
	Title   string       `json:"title"`
	DueDate *models.Date `json:"due_date"`
}

// Charts bundles the dashboard chart payloads.
type Charts struct {
	TasksByStatus     []StatusCount  `json:"tasks_by_status"`
	TasksByProject    []ProjectCount `json:"tasks_by_project"`
	UpcomingDeadlines []Deadline     `json:"upcoming_deadlines"`
}

// DailyEarnings is one day's earnings total.
type DailyEarnings struct {
	Date     string  `json:"date"`
	Earnings float64 `json:"earnings"`
}

// DashboardRepository issues the read-only aggregate queries behind the
// dashboard views. Date bounds are computed in Go and bound as parameters;
// soft-deleted tasks are excluded everywhere.
type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance
func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Summary computes the headline metrics as of now.
func (r *DashboardRepository) Summary(now time.Time) (Summary, error) {
	var s Summary

	tasks := func() *gorm.DB { return r.db.Model(&models.Task{}) }

	if err := tasks().Count(&s.TotalTasks).Error; err != nil {
		return s, err
	}
	if err := tasks().Where("status_id = ?", models.TaskStatusDone).
		Count(&s.CompletedTasks).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&models.Project{}).
		Where("status = ?", models.ProjectStatusActive).
		Count(&s.ActiveProjects).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&models.Project{}).Count(&s.TotalProjects).Error; err != nil {
		return s, err
	}
	if err := tasks().
		Where("due_date < ? AND status_id <> ?", now.Format(dateTimeLayout), models.TaskStatusDone).
		Count(&s.OverdueTasks).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&models.Client{}).Count(&s.TotalClients).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return s, err
	}

	err := r.db.Raw(`
		SELECT COALESCE(ROUND(AVG(actual_hours), 2), 0)
		FROM tasks
		WHERE actual_hours IS NOT NULL AND deleted_at IS NULL`).
		Scan(&s.AvgTaskHours).Error
	if err != nil {
		return s, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	s.EarningsMonth, err = r.earningsBetween(monthStart, monthStart.AddDate(0, 1, 0))
	return s, err
}

// earningsBetween sums actual_hours x hourly_rate for Done, non-deleted
// tasks due in [from, to) whose project carries a rate.
func (r *DashboardRepository) earningsBetween(from, to time.Time) (float64, error) {
	var earnings float64
	err := r.db.Raw(`
		SELECT COALESCE(SUM(t.actual_hours * p.hourly_rate), 0)
		FROM tasks t
		LEFT JOIN projects p ON t.project_id = p.id
		WHERE t.due_date >= ? AND t.due_date < ?
		AND t.actual_hours IS NOT NULL
		AND t.status_id = ?
		AND t.deleted_at IS NULL
		AND p.hourly_rate IS NOT NULL`,
		from.Format(dateLayout), to.Format(dateLayout), models.TaskStatusDone).
		Scan(&earnings).Error
	return earnings, err
}

// RecentTasks returns the 5 most-recently-created non-deleted tasks with
// status and project title joined.
func (r *DashboardRepository) RecentTasks() ([]models.Task, error) {
	var recent []models.Task
	result := r.db.Model(&models.Task{}).
		Select("tasks.*, ts.name AS status_name, p.title AS project_title").
		Joins("LEFT JOIN task_statuses ts ON tasks.status_id = ts.id").
		Joins("LEFT JOIN projects p ON tasks.project_id = p.id").
		Order("tasks.created_at DESC").
		Limit(5).
		Find(&recent)
	return recent, result.Error
}

// ActiveProjects returns up to 5 Active projects with total and completed
// task counts.
func (r *DashboardRepository) ActiveProjects() ([]ActiveProject, error) {
	var projects []ActiveProject
	err := r.db.Raw(`
		SELECT p.id, p.title, p.description, p.status, p.priority,
		       p.start_date, p.end_date, p.client_id, p.hourly_rate, p.created_at,
		       c.name AS client_name,
		       (SELECT COUNT(*) FROM tasks t1 WHERE t1.project_id = p.id AND t1.deleted_at IS NULL) AS total_tasks,
		       (SELECT COUNT(*) FROM tasks t2 WHERE t2.project_id = p.id AND t2.status_id = ? AND t2.deleted_at IS NULL) AS completed_tasks
		FROM projects p
		LEFT JOIN clients c ON p.client_id = c.id
		WHERE p.status = ?
		ORDER BY p.created_at DESC
		LIMIT 5`, models.TaskStatusDone, models.ProjectStatusActive).
		Scan(&projects).Error
	return projects, err
}

// Charts computes the dashboard chart payloads as of now.
func (r *DashboardRepository) Charts(now time.Time) (Charts, error) {
	var charts Charts

	err := r.db.Raw(`
		SELECT ts.name AS status, COUNT(t.id) AS count
		FROM task_statuses ts
		LEFT JOIN tasks t ON ts.id = t.status_id AND t.deleted_at IS NULL
		GROUP BY ts.id, ts.name
		ORDER BY ts.id`).
		Scan(&charts.TasksByStatus).Error
	if err != nil {
		return charts, err
	}

	err = r.db.Raw(`
		SELECT p.title AS project, COUNT(t.id) AS count
		FROM projects p
		LEFT JOIN tasks t ON p.id = t.project_id AND t.deleted_at IS NULL
		GROUP BY p.id, p.title
		ORDER BY count DESC`).
		Scan(&charts.TasksByProject).Error
	if err != nil {
		return charts, err
	}

	today := now.Format(dateLayout)
	weekOut := now.AddDate(0, 0, 7).Format(dateLayout)
	err = r.db.Raw(`
		SELECT id, title, due_date
		FROM tasks
		WHERE due_date >= ? AND due_date <= ?
		AND deleted_at IS NULL
		ORDER BY due_date ASC
		LIMIT 5`, today, weekOut).
		Scan(&charts.UpcomingDeadlines).Error
	return charts, err
}

// MonthlyEarnings returns per-day earnings for the given calendar month.
// Like the month summary it only counts Done tasks.
func (r *DashboardRepository) MonthlyEarnings(year, month int) ([]DailyEarnings, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var rows []DailyEarnings
	err := r.db.Raw(`
		SELECT DATE(t.due_date) AS date,
		       SUM(t.actual_hours * p.hourly_rate) AS earnings
		FROM tasks t
		LEFT JOIN projects p ON t.project_id = p.id
		WHERE t.due_date >= ? AND t.due_date < ?
		AND t.actual_hours IS NOT NULL
		AND t.status_id = ?
		AND t.deleted_at IS NULL
		AND p.hourly_rate IS NOT NULL
		GROUP BY DATE(t.due_date)
		ORDER BY date`,
		from.Format(dateLayout), to.Format(dateLayout), models.TaskStatusDone).
		Scan(&rows).Error
	return rows, err
}
