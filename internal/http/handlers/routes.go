package handlers

import (
	"net/http"

	"parkops/internal/domain/models"
	"parkops/internal/http/middleware"
	"parkops/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/routes
func (a *API) CreateRoute(c *gin.Context) {
	var in services.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	route, err := a.routes(c).Create(middleware.GetParkID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

// GET /api/routes
func (a *API) ListRoutes(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	c.JSON(http.StatusOK, a.routes(c).List(middleware.GetParkID(c), activeOnly))
}

// GET /api/routes/:id
func (a *API) GetRoute(c *gin.Context) {
	route, err := a.routes(c).Get(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// PUT /api/routes/:id
func (a *API) UpdateRoute(c *gin.Context) {
	var upd models.RouteUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	route, err := a.routes(c).Update(middleware.GetParkID(c), c.Param("id"), upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}
