package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/samirrijal/restroomfinder/internal/pkg/metrics"
)

// The host abandons a turn after 8 seconds.
const webhookTimeout = 7 * time.Second

// SetupRoutes registers the host webhook, the REST and GraphQL query API,
// health checks and metrics.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness, no timeout
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// Voice host webhook. The host calls from a small pool of addresses, so
	// it is not rate limited per IP.
	app.Post("/v1/requests", timeout.NewWithContext(WebhookHandler(deps), webhookTimeout))

	// Rate limiting for the public query API: 120 requests per minute per IP
	rateLimit := limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	})

	// REST API v1, 15s per-request timeout
	v1 := app.Group("/v1")
	v1.Get("/restrooms", rateLimit, timeout.NewWithContext(NearbyRestroomsHandler(deps), 15*time.Second))
	v1.Get("/postal-codes/:code", rateLimit, timeout.NewWithContext(GetPostalCodeHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", rateLimit, timeout.NewWithContext(GraphQLHandler(deps), 15*time.Second))

	// API documentation (Swagger UI)
	SetupDocs(app, deps.OpenAPIPath)
}
