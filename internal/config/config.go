package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Artifacts
	DatasetPath string // CSV with a date column plus wide or long trend data
	ModelPath   string // JSON-serialized regression model

	// UI assets
	ViewsDir  string
	StaticDir string

	// Prediction
	HorizonDays int // Offered dates are today through today+HorizonDays

	// Rate limiting
	RateLimitMax int // Requests per minute per IP

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Site Branding
	SiteTitle       string // env: SITE_TITLE, default: "Gen Z Trend Predictor"
	SiteDescription string // env: SITE_DESCRIPTION
	SiteFooter      string // env: SITE_FOOTER
}

// DefaultSiteDescription is shown under the page title for a horizon of days.
func DefaultSiteDescription(days int) string {
	return fmt.Sprintf("Select a trend and a date (today or next %d days). "+
		"The prediction shows engagement for that date, and the chart shows average trend values by weekday.", days)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	horizon := getEnvInt("HORIZON_DAYS", 10)
	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":3000"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:      getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:     getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:      getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:       getEnv("TLS_CA_FILE", ""),
		DatasetPath:     getEnv("DATASET_PATH", "genz_google_trends_processed.csv"),
		ModelPath:       getEnv("MODEL_PATH", "genz_predictor.json"),
		ViewsDir:        getEnv("VIEWS_DIR", "./views"),
		StaticDir:       getEnv("STATIC_DIR", "./static"),
		HorizonDays:     horizon,
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		CORSOrigins:     getEnv("CORS_ORIGINS", ""),
		SiteTitle:       getEnv("SITE_TITLE", "Gen Z Trend Predictor"),
		SiteDescription: getEnv("SITE_DESCRIPTION", DefaultSiteDescription(horizon)),
		SiteFooter:      getEnv("SITE_FOOTER", "Trend Predictor - engagement forecasts from historical trends"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt parses a positive integer, falling back on missing or bad values.
func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
