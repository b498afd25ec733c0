package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
}

// GET /api/last-modified
// Polling clients compare the stamp before reloading dashboards.
func (a *API) LastModified(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lastModified": a.stats().LastModified().Format(time.RFC3339Nano)})
}
