// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL (airport directory and fleet)
	PostgresURI string

	// MongoDB (quote audit trail)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Quoting
	QueryTimeout     time.Duration
	CacheTTL         time.Duration
	SearchRadiusKm   float64
	OvernightFee     float64
	ParkingSurcharge bool
	Currency         string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresURI: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=charter port=5432 sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "charter"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		QueryTimeout:     time.Duration(getEnvAsInt("QUERY_TIMEOUT", 5)) * time.Second,
		CacheTTL:         time.Duration(getEnvAsInt("CACHE_TTL", 3600)) * time.Second,
		SearchRadiusKm:   getEnvAsFloat("SEARCH_RADIUS_KM", 500),
		OvernightFee:     getEnvAsFloat("OVERNIGHT_FEE", 1000),
		ParkingSurcharge: getEnvAsBool("PARKING_SURCHARGE", false),
		Currency:         getEnv("CURRENCY", "EUR"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
