package routes

import (
	"net/http"
	"time"

	"hufbook/config"
	"hufbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered on the router.
type HandlerBundle struct {
	Experience *handlers.ExperienceHandler
	Booking    *handlers.BookingHandler
	Payment    *handlers.PaymentHandler
}

// RegisterExperienceRoutes registers the catalog endpoints.
func RegisterExperienceRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/experiences")
	{
		api.GET("", hb.Experience.ListHandler)
		api.GET("/:id", hb.Experience.GetHandler)
		api.GET("/:id/availability", hb.Experience.AvailabilityHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Booking.CreateHandler)
		api.GET("/:ref", hb.Booking.GetHandler)
		api.PUT("/:ref/cancel", hb.Booking.CancelHandler)
	}
}

// RegisterPaymentRoutes registers order creation and verification.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/create-order", hb.Payment.CreateOrderHandler)
		api.POST("/verify", hb.Payment.VerifyHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterExperienceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
}
