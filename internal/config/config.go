package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListenAddr            string
	DatabaseURL           string
	AuthToken             string
	ScanAddresses         []string
	ScanInterval          time.Duration
	ScanConcurrency       int
	ScanRateLimit         float64
	ReportInterval        time.Duration
	ReportXLSXPath        string
	SheetsCredentialsJSON string
	SheetsSpreadsheetID   string
	TokenCatalog          string
}

// Load reads configuration from environment variables with sensible defaults.
// DATABASE_URL may stay empty; the service then runs with in-memory storage.
func Load() Config {
	return Config{
		ListenAddr:            envOrDefault("LISTEN_ADDR", ":8080"),
		DatabaseURL:           envOrDefault("DATABASE_URL", ""),
		AuthToken:             envOrDefault("AUTH_TOKEN", ""),
		ScanAddresses:         envOrDefaultList("SCAN_ADDRESSES"),
		ScanInterval:          envOrDefaultDuration("SCAN_INTERVAL", 15*time.Minute),
		ScanConcurrency:       envOrDefaultInt("SCAN_CONCURRENCY", 4),
		ScanRateLimit:         envOrDefaultFloat("SCAN_RATE_LIMIT", 0),
		ReportInterval:        envOrDefaultDuration("REPORT_INTERVAL", 24*time.Hour),
		ReportXLSXPath:        envOrDefault("REPORT_XLSX_PATH", ""),
		SheetsCredentialsJSON: envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
		SheetsSpreadsheetID:   envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		TokenCatalog:          envOrDefault("TOKEN_CATALOG", ""),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("invalid float env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return f
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
