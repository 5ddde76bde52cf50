package dto

// CreateTaskRequest is the POST /api/tasks body. Omitted optional fields
// fall back to the column defaults (status "To Do", priority "Medium").
type CreateTaskRequest struct {
	Title          string   `json:"title"`
	Description    *string  `json:"description"`
	StatusID       *uint    `json:"status_id"`
	Priority       *string  `json:"priority"`
	ProjectID      *uint    `json:"project_id"`
	AssignedTo     *uint    `json:"assigned_to"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	ActualHours    *float64 `json:"actual_hours"`
	TagIDs         []uint   `json:"tag_ids"`
}

// CreateClientRequest is the POST /api/clients body.
type CreateClientRequest struct {
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

// CreateProjectRequest is the POST /api/projects body.
type CreateProjectRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	ClientID    *uint    `json:"client_id"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

// CreateTagRequest is the POST /api/tags body.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateCommentRequest is the POST /api/comments body.
type CreateCommentRequest struct {
	TaskID  uint   `json:"task_id"`
	Content string `json:"content"`
}

// CreateUserRequest is the POST /api/users body. Password is optional for
// admin-style provisioning; /api/register enforces it.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// RestoreTaskRequest is the legacy restore body carrying the task ID.
type RestoreTaskRequest struct {
	ID uint `json:"id"`
}
