// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	API         APIConfig
	Session     SessionConfig
	I18n        I18nConfig
	Web         WebConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// APIConfig locates the remote corporate API that owns all persistence.
type APIConfig struct {
	BaseURL string
}

// SessionConfig holds where the admin bearer token is persisted between
// restarts. One opaque string under one fixed path.
type SessionConfig struct {
	TokenFile string
}

type I18nConfig struct {
	DefaultLocale string
	LocalesPath   string
}

type WebConfig struct {
	TemplatesGlob string
	StaticDir     string
	AllowOrigins  []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
		},
		Session: SessionConfig{
			TokenFile: getEnv("SESSION_TOKEN_FILE", "./data/session.token"),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
			LocalesPath:   getEnv("LOCALES_PATH", "./internal/i18n/locales"),
		},
		Web: WebConfig{
			TemplatesGlob: getEnv("TEMPLATES_GLOB", "./web/templates/*.html"),
			StaticDir:     getEnv("STATIC_DIR", "./web/static"),
			AllowOrigins:  []string{getEnv("ALLOW_ORIGIN", "*")},
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if c.Session.TokenFile == "" && c.Environment == "production" {
		return fmt.Errorf("session token file is required in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
