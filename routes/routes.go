package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"courtside/config"
	"courtside/handlers"
	"courtside/middleware"
	"courtside/services/auth"
)

// HandlerBundle groups the endpoint handlers and the auth service the
// middleware chain needs.
type HandlerBundle struct {
	AuthService auth.AuthService

	Auth        *handlers.AuthHandler
	Reservation *handlers.ReservationHandler
	Court       *handlers.CourtHandler
	Admin       *handlers.AdminHandler
}

// RegisterAuthRoutes registers registration, login and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/code", hb.Auth.RequestLoginCode)
		api.POST("/code/verify", hb.Auth.LoginWithCode)

		// Protected routes (require a session).
		api.Use(middleware.SessionAuth(hb.AuthService))
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/session", hb.Auth.CurrentUser)
	}
}

// RegisterNotificationRoutes registers device push token management.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.SessionAuth(hb.AuthService))
		api.PUT("/token", hb.Auth.RegisterFCMToken)
	}
}

// RegisterReservationRoutes registers the member reservation endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.SessionAuth(hb.AuthService))
		api.GET("", hb.Reservation.List)
		api.GET("/:id", hb.Reservation.Get)
		api.POST("", hb.Reservation.Create)
		api.PUT("/:id", hb.Reservation.Update)
		api.DELETE("", hb.Reservation.Delete)
	}
}

// RegisterCourtRoutes registers the court catalog read endpoints.
func RegisterCourtRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/courts")
	{
		api.Use(middleware.SessionAuth(hb.AuthService))
		api.GET("", hb.Court.List)
		api.GET("/:id", hb.Court.Get)
	}
}

// RegisterAdminRoutes registers the administrative endpoints: the
// unscoped reservation calendar, court management and account listing.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.SessionAuth(hb.AuthService))
		api.Use(middleware.AdminOnly())
		api.GET("/reservations", hb.Reservation.ListAll)
		api.POST("/reservations", hb.Reservation.Create)
		api.PUT("/reservations/:id", hb.Reservation.Update)
		api.DELETE("/reservations", hb.Reservation.Delete)
		api.GET("/users", hb.Admin.ListUsers)
		api.POST("/courts", hb.Court.Create)
		api.PUT("/courts/:id", hb.Court.Update)
		api.DELETE("/courts/:id", hb.Court.Delete)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterCourtRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
