package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/meridiangallery/backend/internal/config"
	"github.com/meridiangallery/backend/internal/handlers"
	"github.com/meridiangallery/backend/internal/middleware"
	"github.com/meridiangallery/backend/internal/models"
	"github.com/meridiangallery/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Store clients are constructed once and shared by every request
	dynamoClient, err := models.InitDynamo(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize DynamoDB client")
	}

	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	artworkService := services.NewArtworkService(dynamoClient, cfg)
	bioService := services.NewBioService(dynamoClient, cfg)
	authService := services.NewAuthService(cfg)
	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init S3 service")
	}

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	artworkHandler := handlers.NewArtworkHandler(artworkService, s3Service, cfg.DeleteImagesOnDelete)
	bioHandler := handlers.NewBioHandler(bioService)
	uploadHandler := handlers.NewUploadHandler(s3Service)
	authHandler := handlers.NewAuthHandler(authService, cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/google/login", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/me", middleware.Auth(authService), authHandler.Me)
		}

		// Public gallery routes
		api.GET("/artworks", artworkHandler.ListArtworks)
		api.GET("/artworks/homepage", artworkHandler.GetHomepageArtworks)
		api.GET("/artworks/:id", artworkHandler.GetArtwork)
		api.GET("/bio", bioHandler.GetBio)

		// Portal routes (artist only)
		portal := api.Group("")
		portal.Use(middleware.Auth(authService))
		{
			portal.POST("/artworks", artworkHandler.CreateArtwork)
			// Specific route BEFORE generic :id route to avoid conflicts
			portal.PUT("/artworks/reorder", artworkHandler.ReorderArtworks)
			portal.PUT("/artworks/:id", artworkHandler.UpdateArtwork)
			portal.DELETE("/artworks/:id", artworkHandler.DeleteArtwork)
			portal.PUT("/bio", bioHandler.UpdateBio)
			portal.POST("/upload-url",
				middleware.UploadRateLimit(redisClient, cfg),
				uploadHandler.IssueUploadURL)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
