package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	TelegramToken string
	AdminUserIDs  []int64
	DatabasePath  string
	LogLevel      string
	Locale        string

	// Media storage (FTP-backed)
	FTPHost      string
	FTPPort      string
	FTPUser      string
	FTPPassword  string
	MediaBaseURL string
	MediaDir     string

	// Outbound call bounds
	MembershipTimeout time.Duration
	UploadTimeout     time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	adminIDsStr := os.Getenv("ADMIN_USER_IDS")
	if adminIDsStr == "" {
		return nil, fmt.Errorf("ADMIN_USER_IDS environment variable is required")
	}
	adminIDs, err := parseAdminIDs(adminIDsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_USER_IDS: %w", err)
	}

	ftpHost := os.Getenv("FTP_HOST")
	if ftpHost == "" {
		return nil, fmt.Errorf("FTP_HOST environment variable is required")
	}

	mediaBaseURL := strings.TrimRight(os.Getenv("MEDIA_BASE_URL"), "/")
	if mediaBaseURL == "" {
		return nil, fmt.Errorf("MEDIA_BASE_URL environment variable is required")
	}

	membershipTimeout, err := parseDuration("MEMBERSHIP_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	uploadTimeout, err := parseDuration("UPLOAD_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramToken:     token,
		AdminUserIDs:      adminIDs,
		DatabasePath:      getEnv("DATABASE_PATH", "./data/bot.db"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		Locale:            getEnv("LOCALE", "uz"),
		FTPHost:           ftpHost,
		FTPPort:           getEnv("FTP_PORT", "21"),
		FTPUser:           os.Getenv("FTP_USER"),
		FTPPassword:       os.Getenv("FTP_PASSWORD"),
		MediaBaseURL:      mediaBaseURL,
		MediaDir:          getEnv("MEDIA_DIR", "participants"),
		MembershipTimeout: membershipTimeout,
		UploadTimeout:     uploadTimeout,
	}, nil
}

// IsAdmin checks if a user ID is in the admin list
func (c *Config) IsAdmin(userID int64) bool {
	for _, adminID := range c.AdminUserIDs {
		if adminID == userID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s '%s': must be positive", key, s)
	}
	return d, nil
}

// parseAdminIDs parses comma-separated admin user IDs
func parseAdminIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin ID '%s': %w", part, err)
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one admin ID is required")
	}

	return ids, nil
}
