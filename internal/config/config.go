package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Token strategies accepted in AUTH_TOKEN_STRATEGY.
const (
	TokenJWT    = "jwt"
	TokenPaseto = "paseto"
)

const envProduction = "production"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port            string
	Env             string // development or production
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string // CORS allowed origins for cookie auth
}

type DatabaseConfig struct {
	Driver   string
	Mongo    MongoConfig
	Postgres PostgresConfig
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	TokenStrategy string
	JWTSecret     []byte
	// PASETO symmetric key (must be 32 bytes for v4.local)
	PasetoKey []byte
	// Login token lifetime in days
	TokenExpireDays int
	// Cookie lifetime in days
	CookieExpireDays int
	// Signup token lifetime
	SignupTokenDuration time.Duration
}

// Load reads configuration from environment variables, after merging a .env
// file when one is present.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
			Mongo: MongoConfig{
				URI:            getEnv("MONGO_URI", ""),
				Database:       getEnv("MONGO_DATABASE", "auth"),
				ConnectTimeout: getDurationEnv("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			},
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", ""),
				Password: getEnv("DB_PASSWORD", ""),
				DBName:   getEnv("DB_NAME", "auth"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
		},
		Auth: AuthConfig{
			TokenStrategy:       strings.ToLower(getEnv("AUTH_TOKEN_STRATEGY", TokenJWT)),
			JWTSecret:           []byte(getEnv("JWT_SECRET", "")),
			PasetoKey:           []byte(getEnv("PASETO_KEY", "")),
			TokenExpireDays:     getIntEnv("JWT_EXPIRE", 30),
			CookieExpireDays:    getIntEnv("JWT_COOKIE_EXPIRE", 30),
			SignupTokenDuration: getDurationEnv("SIGNUP_TOKEN_DURATION", 10000*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required when DB_DRIVER=mongodb"))
		}
	case DriverPostgres:
		if c.Database.Postgres.User == "" {
			errs = append(errs, errors.New("DB_USER is required when DB_DRIVER=postgres"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Auth.TokenStrategy {
	case TokenJWT:
		if len(c.Auth.JWTSecret) == 0 {
			errs = append(errs, errors.New("JWT_SECRET is required"))
		}
	case TokenPaseto:
		// Validate PASETO key length (must be 32 bytes for v4.local)
		if len(c.Auth.PasetoKey) != 32 {
			errs = append(errs, fmt.Errorf("PASETO_KEY must be exactly 32 bytes, got %d", len(c.Auth.PasetoKey)))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported AUTH_TOKEN_STRATEGY %q", c.Auth.TokenStrategy))
	}

	if c.Auth.TokenExpireDays <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE must be a positive number of days"))
	}
	if c.Auth.CookieExpireDays <= 0 {
		errs = append(errs, errors.New("JWT_COOKIE_EXPIRE must be a positive number of days"))
	}

	return errors.Join(errs...)
}

func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// IsProduction returns true when running in a production deployment
func (c *ServerConfig) IsProduction() bool {
	return c.Env == envProduction
}

// TokenDuration returns the login token lifetime
func (c *AuthConfig) TokenDuration() time.Duration {
	return days(c.TokenExpireDays)
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
