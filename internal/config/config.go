package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	File     FileConfig     `yaml:"file"`
	Share    ShareConfig    `yaml:"share"`
	Notion   NotionConfig   `yaml:"notion"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Frontend FrontendConfig `yaml:"frontend"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type FileConfig struct {
	UploadPath        string   `yaml:"upload_path"`
	MaxImageSize      int64    `yaml:"max_image_size"`
	MaxVideoSize      int64    `yaml:"max_video_size"`
	MaxUserStorage    int64    `yaml:"max_user_storage"`
	AllowedImageTypes []string `yaml:"allowed_image_types"`
	AllowedVideoTypes []string `yaml:"allowed_video_types"`
}

type ShareConfig struct {
	// SiteURL is the public base the share links are built on.
	SiteURL string `yaml:"site_url"`
}

type NotionConfig struct {
	Token      string `yaml:"token"`
	AccountsDB string `yaml:"accounts_db"`
	ManagersDB string `yaml:"managers_db"`
	Schedule   string `yaml:"schedule"`
}

type MetricsConfig struct {
	PlatformURL string `yaml:"platform_url"`
	APIKey      string `yaml:"api_key"`
	ChunkDays   int    `yaml:"chunk_days"`
	Schedule    string `yaml:"schedule"`
}

type FrontendConfig struct {
	BaseURL string `yaml:"base_url"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	// YAML file first, env overrides second
	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.overrideFromEnv()
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) overrideFromEnv() {
	// Database
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.DBName = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}
	if val := os.Getenv("GIN_MODE"); val != "" {
		c.Server.Mode = val
	}

	// Share / frontend
	if val := os.Getenv("SITE_URL"); val != "" {
		c.Share.SiteURL = val
	}
	if val := os.Getenv("FRONTEND_URL"); val != "" {
		c.Frontend.BaseURL = val
	}

	// Notion
	if val := os.Getenv("NOTION_TOKEN"); val != "" {
		c.Notion.Token = val
	}
	if val := os.Getenv("NOTION_ACCOUNTS_DB"); val != "" {
		c.Notion.AccountsDB = val
	}
	if val := os.Getenv("NOTION_MANAGERS_DB"); val != "" {
		c.Notion.ManagersDB = val
	}

	// Metrics platform
	if val := os.Getenv("METRICS_PLATFORM_URL"); val != "" {
		c.Metrics.PlatformURL = val
	}
	if val := os.Getenv("METRICS_API_KEY"); val != "" {
		c.Metrics.APIKey = val
	}

	// File
	if val := os.Getenv("UPLOAD_PATH"); val != "" {
		c.File.UploadPath = val
	}
	if val := os.Getenv("MAX_IMAGE_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.File.MaxImageSize = size
		}
	}
	if val := os.Getenv("MAX_VIDEO_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.File.MaxVideoSize = size
		}
	}
	if val := os.Getenv("MAX_USER_STORAGE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.File.MaxUserStorage = size
		}
	}
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.JWT.ExpireHours == 0 {
		c.JWT.ExpireHours = 24
	}

	if c.File.UploadPath == "" {
		c.File.UploadPath = "./uploads"
	}
	if c.File.MaxImageSize == 0 {
		c.File.MaxImageSize = 31457280 // 30MB
	}
	if c.File.MaxVideoSize == 0 {
		c.File.MaxVideoSize = 4294967296 // 4GB
	}
	if c.File.MaxUserStorage == 0 {
		c.File.MaxUserStorage = 5368709120 // 5GB
	}
	if len(c.File.AllowedImageTypes) == 0 {
		c.File.AllowedImageTypes = []string{"jpg", "jpeg", "png"}
	}
	if len(c.File.AllowedVideoTypes) == 0 {
		c.File.AllowedVideoTypes = []string{"mp4", "mov"}
	}

	if c.Share.SiteURL == "" {
		c.Share.SiteURL = "http://localhost:8080"
	}
	if c.Frontend.BaseURL == "" {
		c.Frontend.BaseURL = c.Share.SiteURL
	}

	if c.Notion.Schedule == "" {
		c.Notion.Schedule = "0 */6 * * *" // every six hours
	}
	if c.Metrics.ChunkDays == 0 {
		c.Metrics.ChunkDays = 7
	}
	if c.Metrics.Schedule == "" {
		c.Metrics.Schedule = "0 7 * * *" // daily, 7:00 UTC
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}
}

func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.DBName, c.Database.SSLMode)
}

func (c *Config) IsImageType(fileType string) bool {
	fileType = strings.ToLower(fileType)
	for _, allowedType := range c.File.AllowedImageTypes {
		if fileType == allowedType {
			return true
		}
	}
	return false
}

func (c *Config) IsVideoType(fileType string) bool {
	fileType = strings.ToLower(fileType)
	for _, allowedType := range c.File.AllowedVideoTypes {
		if fileType == allowedType {
			return true
		}
	}
	return false
}
