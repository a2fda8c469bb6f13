package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fleetops/depot-backend/api-gateway/config"
	"github.com/fleetops/depot-backend/api-gateway/health"
	"github.com/fleetops/depot-backend/api-gateway/middleware"
	"github.com/fleetops/depot-backend/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
	RequireAuth bool   // Requires authentication
	MinimumRole string // Lowest role admitted; empty means any authenticated caller
}

// Routes holds all route definitions. Role checks here only pre-filter;
// the backend services enforce their own.
var Routes = []RouteDefinition{
	// Public routes (no auth required)
	{
		Prefix:      "/auth",
		ServiceName: "user",
		Description: "Authentication endpoints (login, register)",
	},

	// User service routes
	{
		Prefix:      "/users",
		ServiceName: "user",
		Description: "Technician profile endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/admin",
		ServiceName: "user",
		Description: "Account management; mutations are admin downstream",
		RequireAuth: true,
		MinimumRole: "manager",
	},

	// Stock service routes, one prefix per resource type
	{
		Prefix:      "/api/materials",
		ServiceName: "stock",
		Description: "Material stock, reservations and history",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/consumables",
		ServiceName: "stock",
		Description: "Consumable stock, reservations and history",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/vehicles",
		ServiceName: "stock",
		Description: "Vehicle stock, reservations and history",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/depots",
		ServiceName: "stock",
		Description: "Depot management",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/movements",
		ServiceName: "stock",
		Description: "Movement log and exports",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/attributions",
		ServiceName: "stock",
		Description: "Attribution cancellation",
		RequireAuth: true,
		MinimumRole: "manager",
	},
	{
		Prefix:      "/api/low-stock",
		ServiceName: "stock",
		Description: "Resources below their minimum quantity",
		RequireAuth: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
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

	// Circuit breaker and load balancer stats (admin only)
	app.Get("/gateway/stats", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *fiber.Ctx) error {
		lbStats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			lbStats[name] = lb.GetStats()
		}

		return c.JSON(fiber.Map{
			"circuit_breakers": cbManager.GetAllStats(),
			"load_balancers":   lbStats,
		})
	})

	// Drop cached responses after out-of-band stock corrections (admin only)
	if redisClient != nil {
		app.Post("/gateway/cache/invalidate", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *fiber.Ctx) error {
			if err := middleware.InvalidateCache(redisClient, "cache:*"); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.JSON(fiber.Map{
				"status": "invalidated",
			})
		})
	}

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "API Gateway",
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
	// Create handler function
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
		if route.MinimumRole != "" {
			middlewares = append(middlewares, middleware.RequireRole(route.MinimumRole))
		}
	}
	// Public routes have no middleware

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
