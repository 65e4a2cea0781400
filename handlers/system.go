package handlers

import (
	"net/http"
	"runtime"

	"sanctuary/database"
	"sanctuary/version"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness, database reachability, and build version.
func HealthCheck(c *gin.Context) {
	dbUp := database.SQLiteUp(c.Request.Context())

	status := http.StatusOK
	if !dbUp {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   map[bool]string{true: "ok", false: "degraded"}[dbUp],
		"database": dbUp,
		"version":  version.GetFullVersion(),
	})
}

// GetMetrics exposes lightweight runtime counters.
func GetMetrics(c *gin.Context) {
	ok(c, gin.H{
		"goroutines":           runtime.NumGoroutine(),
		"sqlite_busy_errors":   database.SQLiteBusyErrorsTotal(),
		"sqlite_locked_errors": database.SQLiteLockedErrorsTotal(),
		"version":              version.GetFullVersion(),
	})
}
