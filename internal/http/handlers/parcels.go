package handlers

import (
	"net/http"

	"parkops/internal/http/middleware"
	"parkops/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/parcels
func (a *API) CreateParcel(c *gin.Context) {
	var in services.ParcelInput
	if !BindJSONOrError(c, &in) {
		return
	}
	parcel, err := a.parcels(c).Create(middleware.GetParkID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, parcel)
}

// GET /api/parcels?unassigned=true
func (a *API) ListParcels(c *gin.Context) {
	unassignedOnly := c.Query("unassigned") == "true"
	c.JSON(http.StatusOK, gin.H{"parcels": a.parcels(c).List(middleware.GetParkID(c), unassignedOnly)})
}
