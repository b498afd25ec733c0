package handlers

import (
	"net/http"

	"parkops/internal/domain/models"
	"parkops/internal/http/middleware"
	"parkops/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/trips
// Returns one trip, or every occurrence of a recurring series.
func (a *API) CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	trips, err := a.trips(c).Create(middleware.GetParkID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trips": trips})
}

// GET /api/trips?date=&status=
func (a *API) ListTrips(c *gin.Context) {
	trips := a.trips(c).List(middleware.GetParkID(c), c.Query("date"), models.TripStatus(c.Query("status")))
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/board?date=
// Departure-board view with park metadata; driver phone withheld until
// five hours before departure.
func (a *API) ListTripsWithParkMetadata(c *gin.Context) {
	trips := a.trips(c).ListWithParkMetadata(middleware.GetParkID(c), c.Query("date"))
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

type tripUpdateRequest struct {
	models.TripUpdate
	ApplyTo string `json:"applyTo"`
}

// PUT /api/trips/:id
func (a *API) UpdateTrip(c *gin.Context) {
	var req tripUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trips, err := a.trips(c).Update(middleware.GetParkID(c), c.Param("id"), req.TripUpdate, req.ApplyTo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// PUT /api/trips/:id/publish
func (a *API) PublishTrip(c *gin.Context) {
	trip, err := a.trips(c).Publish(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PUT /api/trips/:id/start
func (a *API) StartTrip(c *gin.Context) {
	trip, err := a.trips(c).Start(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PUT /api/trips/:id/complete
func (a *API) CompleteTrip(c *gin.Context) {
	trip, err := a.trips(c).Complete(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PUT /api/trips/:id/cancel
func (a *API) CancelTrip(c *gin.Context) {
	trip, err := a.trips(c).Cancel(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
func (a *API) DeleteTrip(c *gin.Context) {
	if err := a.trips(c).Delete(middleware.GetParkID(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type assignDriverRequest struct {
	DriverID string `json:"driverId"`
}

// PUT /api/trips/:id/driver
func (a *API) AssignDriver(c *gin.Context) {
	var req assignDriverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := a.assignments(c).AssignDriver(middleware.GetParkID(c), c.Param("id"), req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id/driver
func (a *API) UnassignDriver(c *gin.Context) {
	trip, err := a.assignments(c).UnassignDriver(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type assignParcelsRequest struct {
	ParcelIDs []string `json:"parcelIds"`
	Override  bool     `json:"override"`
}

// PUT /api/trips/:id/parcels
func (a *API) AssignParcels(c *gin.Context) {
	var req assignParcelsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	parcels, err := a.assignments(c).AssignParcels(middleware.GetParkID(c), c.Param("id"), req.ParcelIDs, req.Override)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parcels": parcels})
}

// GET /api/trips/:id/manifest
func (a *API) GetTripManifest(c *gin.Context) {
	pdf, filename, err := a.docs(c).GenerateManifest(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/trips/:id/bookings
func (a *API) ListTripBookings(c *gin.Context) {
	bookings, err := a.bookings(c).ListByTrip(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
