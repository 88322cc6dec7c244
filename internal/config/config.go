package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port    string
		GinMode string
	}

	Auth struct {
		JWTSecret string
	}

	QRCode struct {
		// BaseURL is prepended to generated scan URLs, e.g.
		// https://app.conexa.events/ -> https://app.conexa.events/code/<token>
		BaseURL string
	}

	Objects struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}

	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "conexa")
	config.DB.Password = getEnv("DB_PASSWORD", "conexa_password")
	config.DB.Name = getEnv("DB_NAME", "conexa_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Auth.JWTSecret = getEnv("JWT_SECRET", "conexa-dev-secret-change-me")

	config.QRCode.BaseURL = ensureTrailingSlash(getEnv("QRCODE_BASE_URL", "http://localhost:3000/"))

	config.Objects.Endpoint = getEnv("OBJECTS_ENDPOINT", "localhost:9000")
	config.Objects.AccessKey = getEnv("OBJECTS_ACCESS_KEY", "minioadmin")
	config.Objects.SecretKey = getEnv("OBJECTS_SECRET_KEY", "minioadmin")
	config.Objects.Bucket = getEnv("OBJECTS_BUCKET", "images")
	config.Objects.UseSSL = getEnv("OBJECTS_USE_SSL", "false") == "true"

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	config.LogLevel = getEnv("LOG_LEVEL", "info")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func ensureTrailingSlash(url string) string {
	if !strings.HasSuffix(url, "/") {
		return url + "/"
	}
	return url
}
