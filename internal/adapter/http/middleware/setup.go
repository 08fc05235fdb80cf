package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/tracing"
)

// Config selects the optional parts of the chain.
type Config struct {
	// CORSOrigins are the allowed browser origins; empty disables CORS
	CORSOrigins []string

	// Tracer spans every request; nil uses a no-op tracer
	Tracer trace.Tracer

	Recovery RecoveryConfig
}

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - First, to generate/propagate request ID for all subsequent logging
//  2. Tracing - Opens the server span so the logger can pick up its ids
//  3. ContextLogger - Stores the request-scoped logger
//  4. RequestLogger - Logs all requests with request ID
//  5. Recover - Catches panics and returns 500 (wraps handlers)
//  6. CORS - Answers preflight requests when origins are configured
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log *logger.Logger, cfg Config) {
	e.Use(Chain(log, cfg)...)
}

// Chain returns all middleware as a slice for use with route groups.
// Useful when you want to apply middleware to specific route groups only.
func Chain(log *logger.Logger, cfg Config) []echo.MiddlewareFunc {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.NoopTracer()
	}

	chain := []echo.MiddlewareFunc{
		RequestID(),
		Tracing(tracer, propagation.TraceContext{}),
		ContextLogger(log),
		RequestLogger(log),
		RecoverWithConfig(log, cfg.Recovery),
	}
	if len(cfg.CORSOrigins) > 0 {
		chain = append(chain, echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:  cfg.CORSOrigins,
			AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAccept, RequestIDHeader, ClientIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
		}))
	}
	return chain
}
