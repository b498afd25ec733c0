package handlers

import (
	"parkops/internal/http/middleware"
	"parkops/internal/services"
	"parkops/internal/store"

	"github.com/gin-gonic/gin"
)

// API bundles the shared store and settings behind every handler. It is
// built once in the router; tests build their own around a fresh store.
type API struct {
	Store     *store.Store
	JWTSecret []byte
}

func (a *API) parks(c *gin.Context) services.ParkService {
	return services.ParkService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) routes(c *gin.Context) services.RouteService {
	return services.RouteService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) drivers(c *gin.Context) services.DriverService {
	return services.DriverService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) trips(c *gin.Context) services.TripService {
	return services.TripService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) assignments(c *gin.Context) services.AssignmentService {
	return services.AssignmentService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) parcels(c *gin.Context) services.ParcelService {
	return services.ParcelService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) docs(c *gin.Context) services.DocsService {
	return services.DocsService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
}

func (a *API) stats() services.StatsService {
	return services.StatsService{Store: a.Store}
}
