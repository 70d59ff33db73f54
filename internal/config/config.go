package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Catalog CatalogConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CatalogConfig struct {
	PageSize int
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("SHOP_API_BASE_URL", "http://localhost:8080/api"),
			Timeout: getEnvDuration("SHOP_API_TIMEOUT", 15*time.Second),
		},
		Catalog: CatalogConfig{
			PageSize: getEnvInt("SHOP_PAGE_SIZE", 12),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
