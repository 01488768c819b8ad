package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"courtside/config"
	"courtside/database"
	courtRepoPkg "courtside/database/repository/court"
	reservationRepoPkg "courtside/database/repository/reservation"
	userRepoPkg "courtside/database/repository/user"
	"courtside/handlers"
	"courtside/middleware"
	"courtside/routes"
	"courtside/services/auth"
	"courtside/services/court"
	"courtside/services/notification"
	"courtside/services/reservation"
	"courtside/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitCodeCache()
	utils.FirebaseInit()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit())

	// repositories.
	courtRepo := courtRepoPkg.NewMongoCourtRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// notification pipeline: queue publisher plus the background worker
	// that drains it into FCM.
	publisher := notification.NewAsynqPublisher()
	defer publisher.Close()
	notification.InitPushWorker()
	topics := notification.NewFCMTopicManager()

	// services.
	authService := auth.NewDefaultAuthService(userRepo, topics)
	courtService := court.NewDefaultCourtService(courtRepo)
	reservationService := reservation.NewDefaultReservationService(reservationRepo, courtRepo, userRepo, publisher)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		AuthService: authService,
		Auth:        handlers.NewAuthHandler(authService),
		Reservation: handlers.NewReservationHandler(reservationService),
		Court:       handlers.NewCourtHandler(courtService),
		Admin:       handlers.NewAdminHandler(authService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
