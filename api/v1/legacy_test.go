package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyLoginIssuesSignedToken(t *testing.T) {
	router, _ := newTestServer(t)
	registerAndLogin(t, router, "a@example.com")

	w := doJSON(t, router, http.MethodPost, "/?action=login", "", map[string]string{
		"email":    "a@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// The legacy token is the same signed scheme, valid on the canonical
	// surface too.
	w = doJSON(t, router, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLegacyRegister(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/?action=register", "", map[string]string{
		"email":      "new@example.com",
		"password":   "password",
		"first_name": "New",
		"last_name":  "User",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestLegacyActionsRequireAuth(t *testing.T) {
	router, _ := newTestServer(t)

	for _, action := range []string{"tasks", "users", "clients", "projects", "dashboard_summary"} {
		w := doJSON(t, router, http.MethodGet, "/?action="+action, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, action)
		assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"], action)
	}
}

func TestLegacyTaskLifecycle(t *testing.T) {
	router, _ := newTestServer(t)
	token, userID := registerAndLogin(t, router, "a@example.com")

	w := doJSON(t, router, http.MethodPost, "/?action=tasks", token, map[string]interface{}{
		"title": "Legacy task",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody(t, w)
	id := uint(created["id"].(float64))
	assert.Equal(t, float64(userID), created["created_by"])
	assert.Equal(t, float64(1), created["status_id"])

	w = doJSON(t, router, http.MethodGet, "/?action=tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/?action=tasks&id=%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Legacy task", decodeBody(t, w)["title"])

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/?action=tasks&id=%d", id), token,
		map[string]interface{}{"priority": "High"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "High", decodeBody(t, w)["priority"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/?action=tasks&id=%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task deleted successfully", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodGet, "/?action=tasks&deleted=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trashed []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trashed))
	assert.Len(t, trashed, 1)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/?action=tasks&restore=true&id=%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Task restored successfully", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/?action=tasks&id=%d&permanent=true", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Task permanently deleted", decodeBody(t, w)["message"])
}

func TestLegacyRestoreWithBodyID(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerAndLogin(t, router, "a@example.com")

	created := createTaskHTTP(t, router, token, map[string]interface{}{"title": "T"})
	id := uint(created["id"].(float64))
	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/?action=tasks&restore=true", token,
		map[string]interface{}{"id": id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Task restored successfully", decodeBody(t, w)["message"])
}

func TestLegacyDashboardActions(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerAndLogin(t, router, "a@example.com")

	for _, action := range []string{"dashboard_summary", "recent_tasks", "active_projects",
		"dashboard_charts", "monthly_earnings"} {
		w := doJSON(t, router, http.MethodGet, "/?action="+action, token, nil)
		assert.Equal(t, http.StatusOK, w.Code, action)
	}
}

func TestLegacyUnknownAction(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := registerAndLogin(t, router, "a@example.com")

	w := doJSON(t, router, http.MethodGet, "/?action=exports", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decodeBody(t, w)["error"])

	// Missing IDs on verbs that need one behave like unmatched routes.
	w = doJSON(t, router, http.MethodPut, "/?action=tasks", token, map[string]interface{}{"title": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLegacyUserDeleteKeepsAdminGate(t *testing.T) {
	router, db := newTestServer(t)
	userToken, userID := registerAndLogin(t, router, "user@example.com")
	adminToken, _ := loginAsAdmin(t, router, db, "admin@example.com")

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/?action=users&id=%d", userID), userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", decodeBody(t, w)["error"])

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/?action=users&id=%d", userID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted successfully", decodeBody(t, w)["message"])
}
