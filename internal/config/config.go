package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port              string
	Origin            string
	Environment       string
	JWTSecret         string
	JWTExpirationDays int
	Database          DatabaseConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	// Session tokens are long-lived on purpose; role changes and deactivation
	// are picked up from storage on every request instead of via revocation.
	jwtExpDays, err := strconv.Atoi(getEnv("JWT_EXPIRATION_DAYS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_DAYS: %w", err)
	}

	return &Config{
		Port:              getEnv("PORT", "5000"),
		Origin:            getEnv("ORIGIN", "http://localhost:5173"),
		Environment:       getEnv("APP_ENV", "development"),
		JWTSecret:         getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationDays: jwtExpDays,
		Database:          dbConfig,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
