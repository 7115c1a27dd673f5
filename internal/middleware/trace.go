package middleware

import (
	"context"

	"sukiMarket/business/reco"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceMiddleware assigns every request a trace id, available to handlers
// via the echo context and to the business layer via the request context.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := uuid.NewString()

			ctx := context.WithValue(c.Request().Context(), reco.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("trace_id", traceID)
			c.Response().Header().Set("X-Trace-Id", traceID)

			return next(c)
		}
	}
}
