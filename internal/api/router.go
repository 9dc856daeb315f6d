package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/portfolio-stats/internal/middleware"
)

// RouterOptions tunes the global middlewares.
type RouterOptions struct {
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	ExposeErrorDetails bool
}

// DefaultRouterOptions mirrors the configuration defaults.
func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		RequestTimeout:     60 * time.Second,
		RateLimitPerMinute: 60,
		ExposeErrorDetails: true,
	}
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling (opts.RequestTimeout, disabled when zero).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1) and the legacy POST /optimize alias.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.NewErrorHandler(opts.ExposeErrorDetails),
		middleware.RateLimiter(opts.RateLimitPerMinute),
	)

	// ─── Timeout ──────────────────────────────────
	if opts.RequestTimeout > 0 {
		router.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), opts.RequestTimeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.POST("/optimize", handler.Optimize)
		v1.GET("/companies", handler.Companies)
	}

	// ─── Legacy ───────────────────────────────────
	router.POST("/optimize", handler.Optimize)

	return router
}
