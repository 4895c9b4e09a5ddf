package database

import (
	"fmt"

	"adhub-backend/internal/config"
	"adhub-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func createDatabaseIfNotExists(cfg config.DatabaseConfig) error {
	if cfg.URL != "" {
		return nil
	}

	defaultDSN := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=postgres sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(defaultDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	var exists bool
	checkSQL := "SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = $1)"
	if err := db.Raw(checkSQL, cfg.DBName).Scan(&exists).Error; err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}

	if !exists {
		if err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.DBName)).Error; err != nil {
			return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
		}
		logrus.Infof("database %q created", cfg.DBName)
	}

	return nil
}

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dsn string

	if cfg.URL != "" {
		dsn = cfg.URL
	} else {
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

		if err := createDatabaseIfNotExists(cfg); err != nil {
			logrus.WithError(err).Warn("database creation check failed, connecting anyway")
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Manager{},
		&models.Account{},
		&models.CreativeDraft{},
		&models.CreativeFile{},
		&models.OptimizationRecording{},
		&models.Deck{},
		&models.AccountSyncState{},
		&models.DailyMetric{},
		&models.UserStorage{},
		&models.SystemConfig{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	if err := insertDefaultConfigs(db); err != nil {
		return fmt.Errorf("failed to insert default configs: %w", err)
	}

	return nil
}

func insertDefaultConfigs(db *gorm.DB) error {
	defaultConfigs := []models.SystemConfig{
		{Key: "max_file_size_image", Value: "31457280", Description: "max single image size in bytes (30MB)"},
		{Key: "max_file_size_video", Value: "4294967296", Description: "max single video size in bytes (4GB)"},
		{Key: "allowed_image_types", Value: "jpg,jpeg,png", Description: "accepted image formats"},
		{Key: "allowed_video_types", Value: "mp4,mov", Description: "accepted video formats"},
		{Key: "share_password_min_length", Value: "6", Description: "minimum share password length"},
	}

	for _, cfg := range defaultConfigs {
		var existing models.SystemConfig
		if err := db.Where("key = ?", cfg.Key).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&cfg).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}
	}

	return nil
}
