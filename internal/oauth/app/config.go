package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./oauth.db)
	LoginURL     string // Required in practice: where unauthenticated browsers are sent

	IdentityMode    string // Optional: session validation mode (jwt, remote) (default: jwt)
	SessionSecret   string // Required for jwt mode: HS256 secret shared with the host app
	SessionIssuer   string // Optional: expected issuer claim on session tokens
	IdentityBaseURL string // Required for remote mode: host app base URL

	CodeTTL        time.Duration // Optional: authorization code lifetime (default: 10m)
	AccessTokenTTL time.Duration // Optional: access token lifetime (default: 1h)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return Config{
		DatabaseFile:    getEnvOrDefault("OAUTH_DATABASE_FILE", "oauth.db"),
		LoginURL:        getEnvOrDefault("OAUTH_LOGIN_URL", "/login"),
		IdentityMode:    getEnvOrDefault("OAUTH_IDENTITY_MODE", "jwt"),
		SessionSecret:   os.Getenv("OAUTH_SESSION_SECRET"),
		SessionIssuer:   os.Getenv("OAUTH_SESSION_ISSUER"),
		IdentityBaseURL: os.Getenv("OAUTH_IDENTITY_BASE_URL"),

		CodeTTL:        getEnvDurationOrDefault("OAUTH_CODE_TTL", 10*time.Minute),
		AccessTokenTTL: getEnvDurationOrDefault("OAUTH_ACCESS_TOKEN_TTL", time.Hour),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
