package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string
	SiteURL     string

	APIToken string

	AsaasAPIKey       string
	AsaasEnvironment  string
	AsaasWebhookToken string
	AsaasTimeout      int

	RedisAddr string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

const (
	AsaasEnvSandbox    = "sandbox"
	AsaasEnvProduction = "production"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "turmapay"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		SiteURL:     strings.TrimRight(getenv("SITE_URL", "http://localhost:8080"), "/"),

		APIToken: strings.TrimSpace(getenv("API_TOKEN", "")),

		AsaasAPIKey:       strings.TrimSpace(getenv("ASAAS_API_KEY", "")),
		AsaasEnvironment:  normalizeAsaasEnv(getenv("ASAAS_ENVIRONMENT", AsaasEnvSandbox)),
		AsaasWebhookToken: strings.TrimSpace(getenv("ASAAS_WEBHOOK_TOKEN", "")),
		AsaasTimeout:      int(getenvInt64("ASAAS_TIMEOUT_SECONDS", 15)),

		RedisAddr: strings.TrimSpace(getenv("REDIS_ADDR", "")),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "turmapay"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 5)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 25)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 1800)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 300)),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func normalizeAsaasEnv(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case AsaasEnvProduction:
		return AsaasEnvProduction
	default:
		return AsaasEnvSandbox
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
