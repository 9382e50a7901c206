package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockfn/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions tunes the middleware chain.
type RouterOptions struct {
	RequestTimeout     time.Duration // per-request context deadline; 0 disables it
	RateLimitPerMinute int           // requests per client IP per minute; 0 disables it
}

// DefaultRouterOptions mirrors the configuration defaults.
var DefaultRouterOptions = RouterOptions{
	RequestTimeout:     10 * time.Second,
	RateLimitPerMinute: 60,
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the stock routes (/showStock, /updateStock, /addStock).
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
		middleware.ErrorHandler,
	)
	if opts.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute))
	}

	// ─── Timeout ──────────────────────────────────
	if opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Stock endpoints ──────────────────────────
	router.GET("/showStock", handler.ShowStock)
	router.GET("/updateStock", handler.UpdateStock)
	router.GET("/addStock", handler.AddStock)

	return router
}
