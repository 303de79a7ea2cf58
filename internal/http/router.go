package api

import (
	"log"
	stdhttp "net/http"

	intconfig "busbuddy/internal/config"
	h "busbuddy/internal/http/handlers"
	"busbuddy/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authed := middleware.RequireUser(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Trip search (public, read-only)
		api.GET("/trips/search", h.SearchTrips)

		// Bookings
		bookings := api.Group("/bookings", authed)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicket)

		// Payment provider callbacks
		payments := api.Group("/payments")
		payments.POST("/:id/confirm", h.ConfirmPayment)
		payments.POST("/:id/fail", h.FailPayment)

		// Rider dashboard
		api.GET("/users/me/bookings", authed, h.MyBookings)

		// Operator fleet
		buses := api.Group("/buses")
		buses.GET("/:id", h.GetBus)
		buses.GET("", authed, h.ListBuses)
		buses.POST("", authed, h.PublishBus)
	}

	return r
}
