package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"identity": {
				Name:        "identity-service",
				BaseURL:     getEnv("IDENTITY_SERVICE_URL", "http://localhost:8081"),
				Instances:   getInstances("IDENTITY_SERVICE_URLS", getEnv("IDENTITY_SERVICE_URL", "http://localhost:8081")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"inventory": {
				Name:        "inventory-service",
				BaseURL:     getEnv("INVENTORY_SERVICE_URL", "http://localhost:8082"),
				Instances:   getInstances("INVENTORY_SERVICE_URLS", getEnv("INVENTORY_SERVICE_URL", "http://localhost:8082")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

// getInstances parses a comma-separated list of instance URLs,
// falling back to the single base URL when the list env is unset.
func getInstances(key, fallback string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return []string{fallback}
	}

	var instances []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			instances = append(instances, trimmed)
		}
	}
	if len(instances) == 0 {
		return []string{fallback}
	}
	return instances
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
