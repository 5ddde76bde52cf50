package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCRUD(t *testing.T) {
	router, _ := newTestServer(t)
	token, userID := registerAndLogin(t, router, "a@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/clients", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name is required", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodPost, "/api/clients", token, map[string]string{
		"name":          "Acme Corp",
		"contact_email": "contact@acme.test",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	id := uint(created["id"].(float64))
	assert.Equal(t, float64(userID), created["created_by"])
	assert.Equal(t, "Test", created["created_first_name"])

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/clients/%d", id), token,
		map[string]interface{}{"phone": "555-0100"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "555-0100", body["phone"])
	assert.Equal(t, "Acme Corp", body["name"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Client deleted successfully", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/clients/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Client not found", decodeBody(t, w)["error"])
}

func TestProjectCRUD(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerAndLogin(t, router, "a@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/projects", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodPost, "/api/projects", token, map[string]interface{}{
		"title":       "Website relaunch",
		"start_date":  "2026-09-01",
		"hourly_rate": 80,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	id := uint(created["id"].(float64))
	assert.Equal(t, "Active", created["status"])
	assert.Equal(t, "Medium", created["priority"])
	assert.Equal(t, "2026-09-01", created["start_date"])

	w = doJSON(t, router, http.MethodPost, "/api/projects", token, map[string]interface{}{
		"title":      "Bad date",
		"start_date": "01-09-2026",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid value for start_date", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), token,
		map[string]interface{}{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Completed", decodeBody(t, w)["status"])
}

func TestCommentOwnership(t *testing.T) {
	router, db := newTestServer(t)
	aliceToken, _ := registerAndLogin(t, router, "alice@example.com")
	bobToken, _ := registerAndLogin(t, router, "bob@example.com")
	adminToken, _ := loginAsAdmin(t, router, db, "admin@example.com")

	task := createTaskHTTP(t, router, aliceToken, map[string]interface{}{"title": "T"})
	taskID := uint(task["id"].(float64))

	w := doJSON(t, router, http.MethodPost, "/api/comments", aliceToken, map[string]interface{}{
		"task_id": taskID,
		"content": "first",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	commentID := uint(decodeBody(t, w)["id"].(float64))

	// Another user cannot edit or delete it.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/comments/%d", commentID), bobToken,
		map[string]string{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can only edit your own comments", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can only delete your own comments", decodeBody(t, w)["error"])

	// The author can.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/comments/%d", commentID), aliceToken,
		map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decodeBody(t, w)["content"])

	// Admins can too.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Comment deleted successfully", decodeBody(t, w)["message"])
}

func TestCommentListByTask(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerAndLogin(t, router, "a@example.com")
	task := createTaskHTTP(t, router, token, map[string]interface{}{"title": "T"})
	taskID := uint(task["id"].(float64))

	for _, content := range []string{"first", "second"} {
		w := doJSON(t, router, http.MethodPost, "/api/comments", token, map[string]interface{}{
			"task_id": taskID,
			"content": content,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/tasks/%d/comments", taskID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 2)
	// Oldest first, with author names joined.
	assert.Equal(t, "first", comments[0]["content"])
	assert.Equal(t, "Test", comments[0]["first_name"])

	w = doJSON(t, router, http.MethodGet, "/api/tasks/999/comments", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeBody(t, w)["error"])
}

func TestDashboardEndpoints(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerAndLogin(t, router, "a@example.com")
	createTaskHTTP(t, router, token, map[string]interface{}{"title": "T", "status_id": 3})

	w := doJSON(t, router, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decodeBody(t, w)
	assert.Equal(t, float64(1), summary["total_tasks"])
	assert.Equal(t, float64(1), summary["completed_tasks"])
	assert.Equal(t, float64(1), summary["total_users"])

	for _, path := range []string{
		"/api/dashboard/recent-tasks",
		"/api/dashboard/active-projects",
		"/api/dashboard/charts",
		"/api/dashboard/monthly-earnings",
	} {
		w := doJSON(t, router, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w = doJSON(t, router, http.MethodGet, "/api/dashboard/monthly-earnings?month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid month", decodeBody(t, w)["error"])
}
