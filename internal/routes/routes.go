package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthmate-server/internal/config"
	"healthmate-server/internal/handlers"
	"healthmate-server/internal/metrics"
	"healthmate-server/internal/middleware"
	"healthmate-server/internal/repo"
	"healthmate-server/internal/service"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, reportSvc *service.ReportService, m *metrics.Collector) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	reportHandler := handlers.NewReportHandler(repo.NewReportRepository(db), reportSvc)
	vitalHandler := handlers.NewVitalHandler(db)
	timelineHandler := handlers.NewTimelineHandler(db)

	router.Use(middleware.Metrics(m))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		reportRoutes := private.Group("/reports")
		{
			reportRoutes.POST("", reportHandler.UploadReport)
			reportRoutes.GET("", reportHandler.GetReports)
			reportRoutes.GET("/:id", reportHandler.GetReport)
			reportRoutes.DELETE("/:id", reportHandler.DeleteReport)
		}

		vitalRoutes := private.Group("/vitals")
		{
			vitalRoutes.POST("", vitalHandler.AddVital)
			vitalRoutes.GET("", vitalHandler.GetVitals)
			vitalRoutes.GET("/:id", vitalHandler.GetVital)
			vitalRoutes.PUT("/:id", vitalHandler.UpdateVital)
			vitalRoutes.DELETE("/:id", vitalHandler.DeleteVital)
		}

		private.GET("/timeline", timelineHandler.GetTimeline)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
