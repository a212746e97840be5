package api

import (
	"net/http"
	"time"

	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	// Handlers
	storyHandler := NewStoryHandler(services, cfg, log)
	importHandler := NewImportHandler(services, cfg, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services, log))

	// API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/layouts", storyHandler.ListLayouts)
		v1.POST("/articles/generate", storyHandler.GenerateArticle)

		stories := v1.Group("/stories")
		{
			stories.POST("", storyHandler.CreateStory)
			stories.GET("", storyHandler.ListStories)
			stories.GET("/:id", storyHandler.GetStory)
			stories.PATCH("/:id", storyHandler.UpdateStory)
			stories.DELETE("/:id", storyHandler.DeleteStory)
			stories.GET("/:id/preview", storyHandler.PreviewStory)
			stories.POST("/:id/share", storyHandler.ShareStory)
		}

		v1.GET("/shared/:token", storyHandler.ViewShared)

		// Batch generation endpoints
		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.CreateImport)
			imports.GET("/:job_id", importHandler.GetImportStatus)
			imports.GET("/:job_id/errors", importHandler.GetImportErrors)
		}

		v1.GET("/exports", exportHandler.StreamExport)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "family-gazette-api",
	})
}

// metricsHandler returns story and job counts
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		stories, err := services.Export.GetCount(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count stories")
		}
		jobs, err := services.Job.GetJobCounts(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to count jobs")
		}

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"stories": stories,
				"jobs":    jobs,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware allows browser clients from the configured origins
func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Idempotency-Key"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	})
}
