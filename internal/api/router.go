package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solasapp/solas-backend-go/internal/accrual"
	"github.com/solasapp/solas-backend-go/internal/config"
	"github.com/solasapp/solas-backend-go/internal/handler"
	"github.com/solasapp/solas-backend-go/internal/middleware"
	"github.com/solasapp/solas-backend-go/internal/repository"
	"github.com/solasapp/solas-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto the gin engine.
func SetupRouter(cfg *config.Config, db *sql.DB, weather service.WeatherProvider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	sampleRepo := repository.NewSampleRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	locationService := service.NewLocationService(
		sampleRepo,
		accrual.Classifier{AccuracyThreshold: cfg.GPSAccuracyThreshold},
		accrual.Machine{MaxGap: cfg.MaxSampleGap},
		weather,
	)
	reportService := service.NewReportService(sampleRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	locationHandler := handler.NewLocationHandler(locationService)
	reportHandler := handler.NewReportHandler(reportService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Solas API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateWindow))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		api.POST("/check-location", locationHandler.CheckLocation)
		api.POST("/feedback", feedbackHandler.Submit)

		reports := api.Group("/reports")
		{
			reports.POST("/daily", reportHandler.Daily)
			reports.POST("/weekly", reportHandler.Weekly)
		}
	}

	return r
}
