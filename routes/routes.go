package routes

import (
	"net/http"
	"time"

	"github.com/bricker/vivial-sub000/handlers"
	"github.com/bricker/vivial-sub000/middleware"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers signup, signin and viewer endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/signin", hb.SignInHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.RequireAccount(hb.AccountRepo))
		api.POST("/signout", hb.SignOutHandler)
		api.GET("/viewer", hb.ViewerHandler)
	}
}

// RegisterOutingRoutes registers outing planning endpoints. Planning and
// rerolling work for anonymous visitors too; auth is optional.
func RegisterOutingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/outings")
	{
		api.Use(middleware.VisitorID())
		api.Use(middleware.OptionalAccount(hb.AccountRepo))
		api.POST("", hb.PlanOutingHandler)
		api.GET("/:outingID", hb.GetOutingHandler)
		api.POST("/:outingID/reroll", hb.RerollOutingHandler)
	}
}

// RegisterCheckoutRoutes registers the checkout flow endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/checkout")
	{
		api.Use(middleware.RequireAccount(hb.AccountRepo))
		api.POST("/outings/:outingID", hb.InitiateCheckoutHandler)
		api.POST("/bookings/:bookingID/submit", hb.SubmitCheckoutHandler)
		api.GET("/reserver-details", hb.GetReserverDetailsHandler)
	}
}

// RegisterBookingRoutes registers booking read and cancel endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.RequireAccount(hb.AccountRepo))
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:bookingID", hb.GetBookingHandler)
		api.DELETE("/:bookingID", hb.CancelBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm Vivial",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.VisitorIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.VisitorIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAccountRoutes(r, hb)
	RegisterOutingRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
