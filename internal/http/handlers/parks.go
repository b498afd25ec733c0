package handlers

import (
	"net/http"

	"parkops/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/parks
// Open by design: parks self-register before any staff account exists.
func (a *API) CreatePark(c *gin.Context) {
	var in services.ParkInput
	if !BindJSONOrError(c, &in) {
		return
	}
	park, err := a.parks(c).Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, park)
}

// GET /api/parks
func (a *API) ListParks(c *gin.Context) {
	c.JSON(http.StatusOK, a.parks(c).List())
}

// GET /api/parks/:id
func (a *API) GetPark(c *gin.Context) {
	park, err := a.parks(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, park)
}
