package config

import (
	"os"
	"strconv"
	"time"

	"eventdesk/internal/cache"
	"eventdesk/internal/database"
	"eventdesk/internal/messaging"
	"eventdesk/internal/search"
)

// Config holds the full application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	TemplateGlob   string
	RequestTimeout time.Duration

	Database database.Config
	Cache    cache.Config
	NATS     messaging.Config
	Search   search.Config
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		TemplateGlob:   getEnv("TEMPLATE_GLOB", "web/templates/*.html"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "eventdesk"),
			Password:           getEnv("DB_PASSWORD", "eventdesk"),
			DBName:             getEnv("DB_NAME", "eventdesk"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		Cache: cache.Config{
			Enabled:  getEnv("VALKEY_ENABLED", "false") == "true",
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("VALKEY_TTL_SEC", 60)) * time.Second,
		},

		NATS: messaging.Config{
			Enabled:   getEnv("NATS_ENABLED", "false") == "true",
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "eventdesk"),
			ClientID:  getEnv("NATS_CLIENT_ID", "eventdesk-web"),
		},

		Search: search.Config{
			Enabled:    getEnv("ELASTICSEARCH_ENABLED", "false") == "true",
			URL:        getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "events"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},
	}
}

// getEnv returns the value of an environment variable or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
