package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	ServiceName string
	Environment string
	LogLevel    string

	DBDriver          string
	DatabaseDSN       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBLogLevel        string
	ResetDB           bool

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	SwaggerHost          string
	RedactInternalErrors bool
	SeedSource           string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first if present; real environment wins.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "3000"),
		ServiceName: getEnv("SERVICE_NAME", "alumni-directory"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBDriver:          getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/alumni?charset=utf8mb4&parseTime=True&loc=UTC"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		ResetDB:           getEnvBool("RESET_DB", false),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:  getEnvDuration("CACHE_TTL", time.Minute),

		SwaggerHost:          os.Getenv("SWAGGER_HOST"),
		RedactInternalErrors: getEnvBool("REDACT_INTERNAL_ERRORS", false),
		SeedSource:           os.Getenv("SEED_SOURCE"),
	}
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
