package main

import (
	"fmt"
	"os"
	"path/filepath"

	"adhub-backend/internal/config"
	"adhub-backend/internal/database"
	"adhub-backend/internal/jobs"
	"adhub-backend/internal/routes"
	"adhub-backend/internal/services"
	"adhub-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log)
	logrus.Info("Starting adhub backend server...")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	if err := createUploadDirs(cfg.File.UploadPath); err != nil {
		logrus.Fatalf("Failed to create upload directories: %v", err)
	}

	notionService := services.NewNotionService(db, cfg.Notion)
	platformClient := services.NewPlatformClient(cfg.Metrics.PlatformURL, cfg.Metrics.APIKey)
	metricsService := services.NewMetricsService(db, platformClient, cfg.Metrics.ChunkDays)

	scheduler := jobs.NewScheduler(notionService, metricsService, cfg)
	if err := scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	router := routes.Setup(db, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.Infof("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func createUploadDirs(base string) error {
	dirs := []string{
		filepath.Join(base, "creatives"),
		filepath.Join(base, "recordings"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
