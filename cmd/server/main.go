package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/safartaxi/trip-match-backend/internal/config"
	"github.com/safartaxi/trip-match-backend/internal/database"
	"github.com/safartaxi/trip-match-backend/internal/handlers"
	"github.com/safartaxi/trip-match-backend/internal/middleware"
	"github.com/safartaxi/trip-match-backend/internal/regions"
	"github.com/safartaxi/trip-match-backend/internal/services"
	"github.com/safartaxi/trip-match-backend/pkg/jwt"
	"github.com/safartaxi/trip-match-backend/pkg/push"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SafarTaxi trip matching backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Select the store backend
	var profileStore database.ProfileStore
	var tripStore database.TripStore
	var db database.DB

	switch cfg.Store.Driver {
	case "postgres":
		logger.Info("Connecting to database...")
		db, err = database.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		logger.Info("Database connection established")

		profileStore = database.NewProfileRepository(db)
		tripStore = database.NewTripRepository(db)
	case "memory":
		logger.Warn("Using in-memory store: data will not survive a restart")
		memStore := database.NewMemoryStore()
		profileStore = memStore
		tripStore = memStore.TripStoreView()
	default:
		logger.Fatalf("Unknown store driver: %s", cfg.Store.Driver)
	}

	// Select the alert delivery channel
	var sender push.Sender
	if cfg.Push.Mode == "telegram" {
		sender = push.NewTelegramSender(push.TelegramConfig{
			BotToken:      cfg.Push.BotToken,
			APIBaseURL:    cfg.Push.APIBaseURL,
			Timeout:       cfg.Push.SendTimeout,
			RatePerSecond: cfg.Push.RatePerSec,
		})
		logger.Info("Telegram delivery channel initialized")
	} else {
		sender = push.NewLogSender(logger)
		logger.Info("Log delivery channel initialized (no messages will be sent)")
	}

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	notifyService := services.NewNotifyService(sender, logger, cfg.Push.SendTimeout)
	matchService := services.NewMatchService(profileStore, tripStore, logger)
	profileService := services.NewProfileService(profileStore, logger)
	tripService := services.NewTripService(profileStore, tripStore, matchService, notifyService, logger)
	adminService := services.NewAdminService(profileStore, notifyService, jwtService, cfg.Auth.AdminPasswordHash, logger)

	// Start the stale trip sweeper
	sweeper := services.NewSweeperService(tripStore, logger, cfg.Match.SweepInterval, cfg.Match.StaleAfter)
	sweeper.Start()

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	tripHandler := handlers.NewTripHandler(tripService, logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheckHandler(db))

	v1 := router.Group("/api/v1")
	{
		// Region vocabulary for the caller's menus (public)
		v1.GET("/regions", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"regions": regions.Names()})
		})
		v1.GET("/regions/:region/districts", func(c *gin.Context) {
			districts, ok := regions.Districts(c.Param("region"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{
					"status":  "error",
					"message": "unknown region",
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{"districts": districts})
		})

		// Gateway routes (protected by the caller token)
		gateway := v1.Group("")
		gateway.Use(middleware.AuthMiddleware(jwtService))
		{
			gateway.POST("/profiles", profileHandler.Register)
			gateway.GET("/profiles/:user_id", profileHandler.Get)
			gateway.DELETE("/profiles/:user_id", profileHandler.Delete)

			gateway.POST("/trips", tripHandler.Create)
			gateway.GET("/trips/:user_id", tripHandler.Get)
			gateway.PATCH("/trips/:user_id/capacity", tripHandler.UpdateCapacity)
			gateway.DELETE("/trips/:user_id", tripHandler.Delete)
			gateway.GET("/trips/:user_id/matches", tripHandler.Matches)
			gateway.POST("/trips/:user_id/location", tripHandler.RelayLocation)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			protected := admin.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole("admin"))
			{
				protected.GET("/stats", adminHandler.Stats)
				protected.POST("/broadcast", adminHandler.Broadcast)
			}
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler reports liveness, including the database when one is in
// use (nil in memory mode).
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": "unhealthy",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
