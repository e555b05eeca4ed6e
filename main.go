package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"healthmate-server/internal/ai"
	"healthmate-server/internal/config"
	"healthmate-server/internal/logger"
	"healthmate-server/internal/metrics"
	"healthmate-server/internal/models"
	"healthmate-server/internal/repo"
	"healthmate-server/internal/routes"
	"healthmate-server/internal/service"
	"healthmate-server/internal/storage"
)

func main() {
	// Load environment variables; a missing .env is fine in production
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zapLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zapLog.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		zapLog.Fatal("connecting to database", zap.Error(err))
	}

	// External collaborators for the ingestion pipeline
	storageClient, err := storage.NewCloudinary(cfg.Cloudinary)
	if err != nil {
		zapLog.Fatal("initializing object storage", zap.Error(err))
	}
	aiClient := ai.NewOpenAI(cfg.OpenAI)

	collector := metrics.NewCollector("healthmate")

	reportSvc := service.NewReportService(
		repo.NewReportRepository(db),
		storageClient,
		aiClient,
		nil, // default HTTP fetcher
		zapLog,
		collector,
	)

	// Initialize Gin router
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, db, cfg, reportSvc, collector)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	zapLog.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		zapLog.Fatal("server exited", zap.Error(err))
	}
}
