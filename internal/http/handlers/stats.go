package handlers

import (
	"net/http"

	"parkops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/stats/bookings
func (a *API) BookingStats(c *gin.Context) {
	c.JSON(http.StatusOK, a.stats().BookingStats(middleware.GetParkID(c)))
}
