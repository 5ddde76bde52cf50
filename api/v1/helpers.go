package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crmplanner/api/logger"
	"github.com/crmplanner/api/models"
)

// parseID extracts a path parameter as an integer. Non-digit segments are
// indistinguishable from unmatched paths, so they get the router's 404 body.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the authenticated caller's ID from the context.
func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	id, _ := v.(uint)
	return id
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("role") == string(models.RoleAdmin)
}

// serverError logs the internal error and answers with a generic message.
// SQL and driver detail never reaches the client.
func serverError(c *gin.Context, err error, message string) {
	logger.Get().Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.Writer.Header().Get("X-Request-ID")),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// queryUint parses an optional numeric query parameter, returning nil when
// absent or non-numeric.
func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	value := uint(parsed)
	return &value
}
