package handlers

import (
	"net/http"

	"parkops/internal/domain/models"
	"parkops/internal/http/middleware"
	"parkops/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
// Places a RESERVED booking under a five-minute hold. A full trip or a
// taken seat answers 409 with conflictType SLOT_TAKEN.
func (a *API) CreateBooking(c *gin.Context) {
	var in services.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	booking, err := a.bookings(c).CreateWithHold(middleware.GetParkID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking, "holdToken": booking.HoldToken})
}

// GET /api/bookings/:id
func (a *API) GetBooking(c *gin.Context) {
	booking, err := a.bookings(c).Get(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PUT /api/bookings/:id/confirm
func (a *API) ConfirmBookingPayment(c *gin.Context) {
	booking, err := a.bookings(c).ConfirmPayment(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type bookingStatusRequest struct {
	Status models.BookingStatus `json:"status"`
	Extra  map[string]string    `json:"extra"`
}

// PUT /api/bookings/:id/status
func (a *API) UpdateBookingStatus(c *gin.Context) {
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := a.bookings(c).UpdateStatus(middleware.GetParkID(c), c.Param("id"), req.Status, req.Extra)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type checkInRequest struct {
	TripID string `json:"tripId"`
}

// PUT /api/bookings/:id/check-in
func (a *API) CheckInBooking(c *gin.Context) {
	var req checkInRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := a.bookings(c).CheckIn(middleware.GetParkID(c), req.TripID, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /api/bookings/search?date=&q=
// Exact-match only: ticket id, normalized phone, or passenger name.
func (a *API) SearchBookings(c *gin.Context) {
	results := a.bookings(c).Search(middleware.GetParkID(c), c.Query("date"), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"bookings": results})
}

// GET /api/bookings/:id/ticket
func (a *API) GetBookingTicket(c *gin.Context) {
	pdf, filename, err := a.docs(c).GenerateTicket(middleware.GetParkID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
