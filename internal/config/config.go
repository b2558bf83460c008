// internal/config/config.go
package config

import (
	"os"
	"strings"
)

// Service configuration is read from the environment; a local .env file is
// loaded by the godotenv autoload import in main. Defaults suit local
// development.
const (
	defaultPort          = "8080"
	defaultOriginPattern = "*"
)

// Port returns the TCP port the HTTP server listens on.
func Port() string {
	if port := os.Getenv("HOKM_SERVICE_PORT"); port != "" {
		return port
	}
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return defaultPort
}

// OriginPatterns returns the allowed WebSocket origin patterns, comma
// separated in HOKM_ALLOWED_ORIGINS.
func OriginPatterns() []string {
	raw := os.Getenv("HOKM_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{defaultOriginPattern}
	}
	parts := strings.Split(raw, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
