package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nexus-scm/scm-platform/api-gateway/config"
	"github.com/nexus-scm/scm-platform/api-gateway/health"
	"github.com/nexus-scm/scm-platform/api-gateway/middleware"
	"github.com/nexus-scm/scm-platform/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool // Requires authentication
	RequireAdmin bool // Requires admin role
	OptionalAuth bool // Forward identity when a token is present, but allow anonymous
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	// Public routes (no auth required)
	{
		Prefix:      "/auth",
		ServiceName: "identity",
		Description: "Authentication endpoints (login, register)",
	},

	// Identity service routes
	{
		Prefix:      "/users",
		ServiceName: "identity",
		Description: "User profile management",
		RequireAuth: true,
	},
	{
		Prefix:       "/admin",
		ServiceName:  "identity",
		Description:  "User administration",
		RequireAuth:  true,
		RequireAdmin: true,
	},

	// Inventory service routes. Product browsing is public, the
	// backend enforces admin on mutations.
	{
		Prefix:       "/api/products",
		ServiceName:  "inventory",
		Description:  "Product catalog, stock levels and movement history",
		OptionalAuth: true,
	},
	{
		Prefix:      "/api/alerts",
		ServiceName: "inventory",
		Description: "Inventory alerts",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/warehouses",
		ServiceName: "inventory",
		Description: "Warehouse management",
		RequireAuth: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "SCM Platform Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	switch {
	case route.RequireAdmin:
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	case route.RequireAuth:
		middlewares = append(middlewares, middleware.AuthMiddleware())
	case route.OptionalAuth:
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
