package api

import (
	stdhttp "net/http"

	intconfig "parkops/internal/config"
	h "parkops/internal/http/handlers"
	"parkops/internal/http/middleware"
	"parkops/internal/store"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the gin engine around the shared store.
func NewRouter(env intconfig.Env, st *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	a := &h.API{Store: st, JWTSecret: []byte(env.JWTSecret)}

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)

		auth := api.Group("/auth")
		auth.POST("/register", a.Register)
		auth.POST("/login", a.Login)

		api.POST("/parks", a.CreatePark)
		api.GET("/parks", a.ListParks)
		api.GET("/parks/:id", a.GetPark)

		// Everything park-scoped requires a token carrying park_id.
		scoped := api.Group("")
		scoped.Use(middleware.AuthRequired([]byte(env.JWTSecret)))
		{
			scoped.GET("/last-modified", a.LastModified)
			scoped.GET("/stats/bookings", a.BookingStats)

			routes := scoped.Group("/routes")
			routes.GET("", a.ListRoutes)
			routes.POST("", a.CreateRoute)
			routes.GET("/:id", a.GetRoute)
			routes.PUT("/:id", a.UpdateRoute)

			drivers := scoped.Group("/drivers")
			drivers.GET("", a.ListDrivers)
			drivers.POST("", a.CreateDriver)
			drivers.GET("/:id", a.GetDriver)
			drivers.PUT("/:id", a.UpdateDriver)

			trips := scoped.Group("/trips")
			trips.GET("", a.ListTrips)
			trips.GET("/board", a.ListTripsWithParkMetadata)
			trips.POST("", a.CreateTrip)
			trips.PUT("/:id", a.UpdateTrip)
			trips.DELETE("/:id", a.DeleteTrip)
			trips.PUT("/:id/publish", a.PublishTrip)
			trips.PUT("/:id/start", a.StartTrip)
			trips.PUT("/:id/complete", a.CompleteTrip)
			trips.PUT("/:id/cancel", a.CancelTrip)
			trips.PUT("/:id/driver", a.AssignDriver)
			trips.DELETE("/:id/driver", a.UnassignDriver)
			trips.PUT("/:id/parcels", a.AssignParcels)
			trips.GET("/:id/manifest", a.GetTripManifest)
			trips.GET("/:id/bookings", a.ListTripBookings)

			bookings := scoped.Group("/bookings")
			bookings.POST("", a.CreateBooking)
			bookings.GET("/search", a.SearchBookings)
			bookings.GET("/:id", a.GetBooking)
			bookings.PUT("/:id/confirm", a.ConfirmBookingPayment)
			bookings.PUT("/:id/status", a.UpdateBookingStatus)
			bookings.PUT("/:id/check-in", a.CheckInBooking)
			bookings.GET("/:id/ticket", a.GetBookingTicket)

			parcels := scoped.Group("/parcels")
			parcels.GET("", a.ListParcels)
			parcels.POST("", a.CreateParcel)
		}
	}

	return r
}
