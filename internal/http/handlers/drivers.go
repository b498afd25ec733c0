package handlers

import (
	"net/http"
	"strconv"

	"parkops/internal/domain/models"
	"parkops/internal/http/middleware"
	"parkops/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/drivers
func (a *API) CreateDriver(c *gin.Context) {
	var in services.DriverInput
	if !BindJSONOrError(c, &in) {
		return
	}
	driver, err := a.drivers(c).Create(middleware.GetParkID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

// GET /api/drivers?qualification=&minRating=&active=
func (a *API) ListDrivers(c *gin.Context) {
	filter := models.DriverFilter{
		Qualification: c.Query("qualification"),
		ActiveOnly:    c.Query("active") == "true",
	}
	if v := c.Query("minRating"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = r
		}
	}
	c.JSON(http.StatusOK, a.drivers(c).List(middleware.GetParkID(c), filter))
}

// GET /api/drivers/:id
func (a *API) GetDriver(c *gin.Context) {
	driver, err := a.drivers(c).Get(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// PUT /api/drivers/:id
func (a *API) UpdateDriver(c *gin.Context) {
	var upd models.DriverUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	driver, err := a.drivers(c).Update(middleware.GetParkID(c), c.Param("id"), upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}
