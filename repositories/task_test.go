package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/testutil"
)

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, title string, rate *float64, createdBy uint) models.Project {
	t.Helper()
	project := models.Project{
		Title:      title,
		Status:     models.ProjectStatusActive,
		Priority:   "Medium",
		HourlyRate: rate,
		CreatedBy:  createdBy,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func seedTask(t *testing.T, repo *TaskRepository, task models.Task) models.Task {
	t.Helper()
	require.NoError(t, repo.Create(&task))
	return task
}

func TestTaskCreateAppliesDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	user := seedUser(t, db, "a@example.com")

	task := seedTask(t, repo, models.Task{Title: "Write spec", CreatedBy: user.ID})

	found, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write spec", found.Title)
	assert.Equal(t, models.TaskStatusToDo, found.StatusID)
	assert.Equal(t, "Medium", found.Priority)
	assert.Equal(t, "To Do", found.StatusName)
	assert.Equal(t, user.ID, found.CreatedBy)
}

func TestTaskPartialUpdateLeavesOtherColumns(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	user := seedUser(t, db, "a@example.com")

	hours := 4.0
	task := seedTask(t, repo, models.Task{
		Title:          "Original",
		Priority:       "High",
		EstimatedHours: &hours,
		CreatedBy:      user.ID,
	})

	updated, err := repo.Update(task.ID, map[string]interface{}{"title": "Renamed"})
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", found.Title)
	assert.Equal(t, "High", found.Priority)
	require.NotNil(t, found.EstimatedHours)
	assert.Equal(t, 4.0, *found.EstimatedHours)
}

func TestTaskUpdateWithNoFieldsIsNoOp(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	user := seedUser(t, db, "a@example.com")
	task := seedTask(t, repo, models.Task{Title: "T", CreatedBy: user.ID})

	updated, err := repo.Update(task.ID, map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestTaskSoftDeleteExcludesAndRestores(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	user := seedUser(t, db, "a@example.com")
	task := seedTask(t, repo, models.Task{Title: "Disposable", CreatedBy: user.ID})

	require.NoError(t, repo.Delete(task.ID, false))

	// Hidden from default reads.
	_, err := repo.FindByID(task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	all, err := repo.FindAll(TaskFilters{})
	require.NoError(t, err)
	assert.Empty(t, all)

	// A second soft delete is a semantic no-op.
	require.NoError(t, repo.Delete(task.ID, false))

	trashed, err := repo.FindTrashed()
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.Equal(t, task.ID, trashed[0].ID)

	require.NoError(t, repo.Restore(task.ID))
	found, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Disposable", found.Title)

	trashed, err = repo.FindTrashed()
	require.NoError(t, err)
	assert.Empty(t, trashed)
}

func TestTaskPermanentDeleteRemovesRowAndTagLinks(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	tags := NewTagRepository(db)
	user := seedUser(t, db, "a@example.com")

	task := seedTask(t, repo, models.Task{Title: "Gone", CreatedBy: user.ID})
	tag := models.Tag{Name: "urgent"}
	require.NoError(t, tags.Create(&tag))
	require.NoError(t, tags.AttachToTask(task.ID, tag.ID))

	require.NoError(t, repo.Delete(task.ID, true))

	_, err := repo.FindAnyByID(task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var links int64
	require.NoError(t, db.Table("task_tags").Where("task_id = ?", task.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestTaskFindAllFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	user := seedUser(t, db, "a@example.com")
	other := seedUser(t, db, "b@example.com")
	project := seedProject(t, db, "P", nil, user.ID)

	seedTask(t, repo, models.Task{Title: "todo", CreatedBy: user.ID})
	done := seedTask(t, repo, models.Task{
		Title:      "done",
		StatusID:   models.TaskStatusDone,
		ProjectID:  &project.ID,
		AssignedTo: &other.ID,
		CreatedBy:  user.ID,
	})

	statusID := models.TaskStatusDone
	byStatus, err := repo.FindAll(TaskFilters{StatusID: &statusID})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, done.ID, byStatus[0].ID)

	byProject, err := repo.FindAll(TaskFilters{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, done.ID, byProject[0].ID)

	byAssignee, err := repo.FindAll(TaskFilters{AssignedTo: &other.ID})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)

	combined, err := repo.FindAll(TaskFilters{StatusID: &statusID, ProjectID: &project.ID, AssignedTo: &other.ID})
	require.NoError(t, err)
	require.Len(t, combined, 1)

	all, err := repo.FindAll(TaskFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskDisplayFieldsJoined(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	user := seedUser(t, db, "a@example.com")
	project := seedProject(t, db, "Website", nil, user.ID)

	task := seedTask(t, repo, models.Task{
		Title:      "Design",
		ProjectID:  &project.ID,
		AssignedTo: &user.ID,
		CreatedBy:  user.ID,
	})

	found, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ProjectTitle)
	assert.Equal(t, "Website", *found.ProjectTitle)
	require.NotNil(t, found.AssignedFirstName)
	assert.Equal(t, "Test", *found.AssignedFirstName)
	require.NotNil(t, found.CreatedLastName)
	assert.Equal(t, "User", *found.CreatedLastName)
}
