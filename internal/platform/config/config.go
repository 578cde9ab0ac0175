package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	JWTSecret         string
	JWTIssuer         string
	JWTExpiresMinutes int
	AllowedOrigins    []string

	EnforceEventOwnership bool
}

func Load() (Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "calendar"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "calendar-api"
	}

	expires := 30
	if raw := strings.TrimSpace(os.Getenv("JWT_EXPIRES_MINUTES")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			expires = parsed
		}
	}

	var origins []string
	for _, value := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			origins = append(origins, value)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTIssuer:         issuer,
		JWTExpiresMinutes: expires,
		AllowedOrigins:    origins,

		EnforceEventOwnership: envBool("ENFORCE_EVENT_OWNERSHIP", false),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
