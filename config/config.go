package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Identity provider
	KeycloakURL           string
	KeycloakRealm         string
	KeycloakClientID      string
	KeycloakClientSecret  string
	KeycloakAdminUsername string
	KeycloakAdminPassword string

	// Redis (rate limiting)
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RateLimitEnabled bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "auth-service"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3002"),
		GinMode: getenv("GIN_MODE", "release"),

		KeycloakURL:           getenv("KEYCLOAK_URL", "http://localhost:8080"),
		KeycloakRealm:         getenv("KEYCLOAK_REALM", "fiap-pos-tech"),
		KeycloakClientID:      getenv("KEYCLOAK_CLIENT_ID", "pos-tech-api"),
		KeycloakClientSecret:  getenv("KEYCLOAK_CLIENT_SECRET", ""),
		KeycloakAdminUsername: getenv("KEYCLOAK_ADMIN_USERNAME", "admin"),
		KeycloakAdminPassword: getenv("KEYCLOAK_ADMIN_PASSWORD", "admin"),

		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          getint("REDIS_DB", 0),
		RateLimitEnabled: getbool("RATE_LIMIT_ENABLED", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// Validate enforces variables that must not fall back to defaults outside
// development. Failing here aborts startup.
func (c *Config) Validate() error {
	if c.Env != "production" {
		return nil
	}
	var missing []string
	if c.KeycloakClientSecret == "" {
		missing = append(missing, "KEYCLOAK_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
