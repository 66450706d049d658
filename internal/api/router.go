package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/fintrack/finance-api/docs"
	"github.com/fintrack/finance-api/internal/api/handler"
	"github.com/fintrack/finance-api/internal/api/middleware"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	AuthService    ports.AuthService
	EntryService   ports.EntryService
	Tokens         ports.TokenService
	Logger         zerolog.Logger
	AllowedOrigins []string
	// Probes are pinged by /api/health/ready.
	Probes []handler.Pinger
	// Registry receives the HTTP request metrics and backs /metrics.
	// Nil means the Prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"Idempotency-Key",
		},
	}))
	e.Use(echomiddleware.BodyLimit("64K"))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "fintrack",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := e.Group("/api")

	health := handler.NewHealthHandler(d.Logger, d.Probes...)
	apiGroup.GET("/health", health.Liveness)
	apiGroup.GET("/health/ready", health.Readiness)

	// --- Auth routes ---
	requireAuth := middleware.Auth(d.Tokens)
	authHandler := handler.NewAuthHandler(d.AuthService)

	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Entry routes ---
	entryHandler := handler.NewEntryHandler(d.EntryService)

	entries := apiGroup.Group("/entries", requireAuth)
	entries.POST("", entryHandler.Create)
	entries.GET("", entryHandler.List)
	entries.GET("/summary", entryHandler.Summary)
	entries.DELETE("/:id", entryHandler.Delete)

	return e
}
