package transport

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hotelease/backend/internal/transport/middleware"
)

func InitRoutes(
	bookingHandler *BookingHandler,
	roomHandler *RoomHandler,
	reviewHandler *ReviewHandler,
	contactHandler *ContactHandler,
	dashboardHandler *DashboardHandler,
	staffToken string,
) *gin.Engine {

	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Staff-Token")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// API routes
	api := router.Group("/api/v1")
	{
		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("/reference/:reference", bookingHandler.GetBookingByReference)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		}

		// Room catalog routes
		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomHandler.GetAllRooms)
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.GET("/rates", roomHandler.GetRateCards)
		}

		// Review routes
		reviews := api.Group("/reviews")
		{
			reviews.POST("", reviewHandler.SubmitReview)
			reviews.GET("", reviewHandler.GetAllReviews)
			reviews.GET("/summary", reviewHandler.GetReviewSummary)
		}

		// Service catalog and contact form
		api.GET("/services", contactHandler.GetAllServices)
		api.POST("/contact", contactHandler.SubmitMessage)

		// Staff routes
		admin := api.Group("/admin", middleware.StaffAuth(staffToken))
		{
			admin.GET("/dashboard", dashboardHandler.GetStats)
			admin.POST("/reconcile", dashboardHandler.Reconcile)

			admin.GET("/bookings", bookingHandler.GetAllBookings)
			admin.GET("/bookings/unassigned", bookingHandler.GetUnassignedBookings)
			admin.GET("/bookings/:id", bookingHandler.GetBooking)
			admin.PATCH("/bookings/:id", bookingHandler.UpdateBooking)
			admin.POST("/bookings/:id/confirm", bookingHandler.ConfirmBooking)

			admin.POST("/rooms", roomHandler.CreateRoom)
			admin.PATCH("/rooms/:id", roomHandler.UpdateRoom)
			admin.GET("/rooms/occupancy", roomHandler.GetOccupancy)

			admin.POST("/services", contactHandler.CreateService)

			admin.GET("/messages", contactHandler.GetAllMessages)
			admin.POST("/messages/:id/handled", contactHandler.MarkMessageHandled)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
