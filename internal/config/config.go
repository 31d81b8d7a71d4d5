// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aristath/decisionlens/internal/modules/sessions"
	"github.com/aristath/decisionlens/internal/utils"
	"github.com/joho/godotenv"
)

// Display modes
const (
	DisplayModeFixed  = "fixed"
	DisplayModeViewer = "viewer"
)

// Config holds application configuration
type Config struct {
	Port           int
	LogLevel       string
	DevMode        bool
	AllowedOrigins []string

	DisplayMode         string // fixed or viewer
	DisplayTimezone     string // IANA zone used by the fixed display mode
	PreOpenMinutes      int    // 0 disables the pre-open window
	SkipWeekendOnReopen bool
	MarketsFile         string // optional YAML market table

	News NewsConfig

	SessionRefreshSchedule string
	NewsRefreshSchedule    string
}

// NewsConfig describes where the news feed comes from
type NewsConfig struct {
	File       string
	S3Bucket   string
	S3Key      string
	S3Endpoint string
	AWSRegion  string
	PageSize   int
}

// UseS3 reports whether the feed is read from object storage
func (n NewsConfig) UseS3() bool {
	return n.S3Bucket != "" && n.S3Key != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvAsInt("PORT", 8080),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DevMode:        getEnvAsBool("DEV_MODE", false),
		AllowedOrigins: utils.ParseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		DisplayMode:         getEnv("DISPLAY_MODE", DisplayModeFixed),
		DisplayTimezone:     getEnv("DISPLAY_TIMEZONE", "Asia/Karachi"),
		PreOpenMinutes:      getEnvAsInt("PRE_OPEN_MINUTES", 60),
		SkipWeekendOnReopen: getEnvAsBool("SKIP_WEEKEND_ON_REOPEN", false),
		MarketsFile:         getEnv("MARKETS_FILE", ""),

		News: NewsConfig{
			File:       getEnv("NEWS_FILE", "data/news.sample.json"),
			S3Bucket:   getEnv("NEWS_S3_BUCKET", ""),
			S3Key:      getEnv("NEWS_S3_KEY", ""),
			S3Endpoint: getEnv("NEWS_S3_ENDPOINT", ""),
			AWSRegion:  getEnv("AWS_REGION", ""),
			PageSize:   getEnvAsInt("NEWS_PAGE_SIZE", 15),
		},

		SessionRefreshSchedule: getEnv("SESSION_REFRESH_SCHEDULE", "@every 15s"),
		NewsRefreshSchedule:    getEnv("NEWS_REFRESH_SCHEDULE", "@every 5m"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}

	switch c.DisplayMode {
	case DisplayModeFixed:
		if _, err := time.LoadLocation(c.DisplayTimezone); err != nil || c.DisplayTimezone == "" {
			return fmt.Errorf("invalid DISPLAY_TIMEZONE %q", c.DisplayTimezone)
		}
	case DisplayModeViewer:
	default:
		return fmt.Errorf("invalid DISPLAY_MODE %q (want %s or %s)", c.DisplayMode, DisplayModeFixed, DisplayModeViewer)
	}

	if c.PreOpenMinutes < 0 || c.PreOpenMinutes >= 24*60 {
		return fmt.Errorf("invalid PRE_OPEN_MINUTES: %d", c.PreOpenMinutes)
	}
	if c.News.PageSize <= 0 {
		return fmt.Errorf("invalid NEWS_PAGE_SIZE: %d", c.News.PageSize)
	}
	if (c.News.S3Bucket == "") != (c.News.S3Key == "") {
		return fmt.Errorf("NEWS_S3_BUCKET and NEWS_S3_KEY must be set together")
	}

	return nil
}

// SessionProfile builds the scheduler profile for the configured display mode.
// The fixed mode carries the configured pre-open window; the viewer mode
// never has one.
func (c *Config) SessionProfile() (sessions.Profile, error) {
	if c.DisplayMode == DisplayModeViewer {
		p := sessions.ViewerProfile()
		p.SkipWeekendOnReopen = c.SkipWeekendOnReopen
		return p, nil
	}

	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return sessions.Profile{}, fmt.Errorf("failed to load display timezone: %w", err)
	}
	p := sessions.FixedProfile(loc)
	p.PreOpen = time.Duration(c.PreOpenMinutes) * time.Minute
	p.SkipWeekendOnReopen = c.SkipWeekendOnReopen
	return p, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
