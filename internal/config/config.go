package config

import (
	"os"
	"strconv"

	"gohaz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Calculation CalculationConfig
	Paths       PathConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// CalculationConfig holds hazard calculation defaults
type CalculationConfig struct {
	TimeSpan        float64 // investigation period, years
	TruncationLevel float64 // standard deviations
	CAVMin          float64 // g*s, 0 disables screening
	MaxDistance     float64 // km, 0 disables distance filtering
	Workers         int     // 1 runs the serial engine
}

// PathConfig holds file system paths
type PathConfig struct {
	ModelFile string // xlsx sites + sources input
	ExportDir string // curve export output
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Calculation: CalculationConfig{
			TimeSpan:        getEnvFloatOrDefault("INVESTIGATION_TIME", 50),
			TruncationLevel: getEnvFloatOrDefault("TRUNCATION_LEVEL", 3),
			CAVMin:          getEnvFloatOrDefault("CAV_MIN", 0),
			MaxDistance:     getEnvFloatOrDefault("MAX_DISTANCE_KM", 0),
			Workers:         getEnvIntOrDefault("WORKERS", 1),
		},
		Paths: PathConfig{
			ModelFile: os.Getenv("MODEL_FILE"),
			ExportDir: getEnvOrDefault("EXPORT_DIR", "."),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(c *Config) error {
	if c.Calculation.TimeSpan <= 0 {
		return errors.ConfigInvalid("INVESTIGATION_TIME must be positive")
	}
	if c.Calculation.TruncationLevel < 0 {
		return errors.ConfigInvalid("TRUNCATION_LEVEL must not be negative")
	}
	if c.Calculation.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
