package config

import (
	"os"

	"github.com/joho/godotenv"
)

var defaults = map[string]string{
	"SERVER_PORT":        "8080",
	"POSTGRES_HOST":      "localhost",
	"POSTGRES_PORT":      "5432",
	"POSTGRES_USER":      "postgres",
	"POSTGRES_PASSWORD":  "postgres",
	"POSTGRES_DB":        "nosdois",
	"REDIS_HOST":         "localhost",
	"REDIS_PORT":         "6379",
	"REDIS_PASSWORD":     "",
	"REDIS_DB":           "0,1",
	"RABBITMQ_HOST":      "localhost",
	"RABBITMQ_PORT":      "5672",
	"RABBITMQ_USER":      "guest",
	"RABBITMQ_PASSWORD":  "guest",
	"JWT_ACCESS_KEY":     "access-secret",
	"JWT_REFRESH_KEY":    "refresh-secret",
	"JWT_ACCESS_EXPIRE":  "60",
	"JWT_REFRESH_EXPIRE": "43200",
	"EVENT_MODE":         "DISABLE",
	"SOCKET_DEBUG":       "false",
	"SUGGEST_API_URL":    "",
	"SUGGEST_API_KEY":    "",
}

var loaded bool

// Config returns the value of a configuration key, preferring the
// environment over .env over the built-in default.
func Config(key string) string {
	if !loaded {
		godotenv.Load(".env")
		loaded = true
	}

	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaults[key]
}
