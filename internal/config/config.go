package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Package-level logger, JSON formatted with its level taken from APP_ENV
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// LevelForEnvironment maps APP_ENV to the log level the services start with
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Config used for the backend configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver    string `json:"db_driver"`
	DatabaseURL string `json:"database_url"`
	DBHost      string `json:"db_host"`
	DBPort      string `json:"db_port"`
	DBName      string `json:"db_name"`
	DBUser      string `json:"db_user"`
	DBPassword  string `json:"db_password"`
	DBSSLMode   string `json:"db_sslmode"`
	DBPath      string `json:"db_path"`
	SeedOnStart bool   `json:"seed_on_start"`

	// Uploaded pizza images
	ImagesDir string `json:"images_dir"`

	// Browser origins allowed to call the API
	CORSOrigins []string `json:"cors_origins"`

	// Logging configuration
	LogLevel string `json:"log_level"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DatabaseURL: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, ImagesDir: %s, CORSOrigins: %v, LogLevel: %s}",
		c.Port, c.Host, c.DBDriver, maskDatabaseURL(c.DatabaseURL), c.DBHost, c.DBName, c.DBUser, c.DBPath, c.ImagesDir, c.CORSOrigins, c.LogLevel)
}

// maskDatabaseURL hides the password part of a connection URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}
	parsed, err := url.Parse(dbURL)
	switch {
	case err != nil:
		return "[REDACTED_INVALID_URL]"
	case parsed.User == nil:
		return parsed.String()
	}
	parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	return parsed.String()
}

// LoadConfig reads the backend configuration from environment variables and returns a Config struct
// It validates the port, the driver and DATABASE_URL when one is given
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "9002"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "postgres", "postgresql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: postgres, sqlite)", driver)
	}

	dbURL := GetEnvWithDefault("DATABASE_URL", "")
	if dbURL != "" {
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	config := &Config{
		Port:        port,
		Host:        GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:    driver,
		DatabaseURL: dbURL,
		DBHost:      GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:      GetEnvWithDefault("DB_PORT", "5432"),
		DBName:      GetEnvWithDefault("DB_NAME", "pizza"),
		DBUser:      GetEnvWithDefault("DB_USER", "pizza"),
		DBPassword:  GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:   GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:      GetEnvWithDefault("DB_PATH", "pizza.sqlite"),
		SeedOnStart: GetEnvAsType("DB_SEED", true),
		ImagesDir:   GetEnvWithDefault("IMAGES_DIR", "dist/images"),
		CORSOrigins: splitList(GetEnvWithDefault("CORS_ORIGINS", "http://localhost:8080,http://localhost:5173")),
		LogLevel:    GetEnvWithDefault("LOG_LEVEL", "info"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// GetEnvWithDefault returns the value of key, or defaultValue when it is unset or empty
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Debugf("%s not set, using default %q", key, defaultValue)
	return defaultValue
}

// GetEnvAsType reads key as an int, bool or string. Unset, unparsable
// and unsupported values yield defaultValue.
func GetEnvAsType[T int | bool | string](key string, defaultValue T) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}

	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case int:
		parsed, err = strconv.Atoi(raw)
	case bool:
		parsed, err = strconv.ParseBool(raw)
	default:
		parsed = raw
	}
	if err != nil {
		log.Warnf("Ignoring invalid value %q for %s", raw, key)
		return defaultValue
	}
	return parsed.(T)
}

// splitList parses a comma separated list, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
