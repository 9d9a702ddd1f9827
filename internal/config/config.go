package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	HTTP   HTTPConfig
	Redis  RedisConfig
	Battle BattleConfig
}

// HTTPConfig holds the gateway listen configuration
type HTTPConfig struct {
	Addr string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL takes precedence when set; empty means in-memory persistence
	URL string

	Addr     string
	Password string
	DB       int
}

// BattleConfig holds battle engine defaults
type BattleConfig struct {
	TurnTimerSeconds int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr: getEnvOrDefault("HTTP_ADDR", ":8080"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Battle: BattleConfig{
			TurnTimerSeconds: getEnvAsIntOrDefault("TURN_TIMER_SECONDS", 60),
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
