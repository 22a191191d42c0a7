package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	ModeCatalog    = "catalog"
	ModePercentage = "percentage"
)

type Config struct {
	// Storage
	DBPath string

	// Logging
	LogFile  string
	LogLevel string

	// Commission rules
	CommissionMode string
	CommissionRate float64

	// Business clock
	UTCOffset int

	// Output
	ExportDir    string
	BusinessName string
	Instagram    string
}

// Load reads configuration from the environment. Call godotenv.Load first to
// pick up a .env file.
func Load() *Config {
	base := defaultBaseDir()
	home, _ := os.UserHomeDir()

	return &Config{
		DBPath: getEnv("KOMISI_DB_PATH", filepath.Join(base, "komisi.db")),

		LogFile:  getEnv("KOMISI_LOG_FILE", filepath.Join(base, "komisi.log")),
		LogLevel: getEnv("KOMISI_LOG_LEVEL", "info"),

		CommissionMode: strings.ToLower(getEnv("KOMISI_COMMISSION_MODE", ModeCatalog)),
		CommissionRate: getEnvFloat("KOMISI_COMMISSION_RATE", 0.30),

		UTCOffset: getEnvInt("KOMISI_UTC_OFFSET", 7),

		ExportDir:    getEnv("KOMISI_EXPORT_DIR", home),
		BusinessName: getEnv("KOMISI_BUSINESS_NAME", "OREA 85"),
		Instagram:    getEnv("KOMISI_INSTAGRAM", "OREA_85"),
	}
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.CommissionMode != ModeCatalog && c.CommissionMode != ModePercentage {
		errors = append(errors, fmt.Sprintf("invalid commission mode '%s': must be one of [%s %s]", c.CommissionMode, ModeCatalog, ModePercentage))
	}

	if c.CommissionRate <= 0 || c.CommissionRate > 1 {
		errors = append(errors, fmt.Sprintf("invalid commission rate %v: must be in (0, 1]", c.CommissionRate))
	}

	if c.UTCOffset < -12 || c.UTCOffset > 14 {
		errors = append(errors, fmt.Sprintf("invalid UTC offset %d: must be between -12 and 14", c.UTCOffset))
	}

	if c.ExportDir == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	if strings.TrimSpace(c.BusinessName) == "" {
		errors = append(errors, "business name cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// defaultBaseDir returns ~/.config/komisi, or ./data when there is no config dir.
func defaultBaseDir() string {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(cfg, "komisi")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
