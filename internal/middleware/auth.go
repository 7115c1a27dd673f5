package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Message string `json:"message"`
}

// RequireAuthorization rejects requests without a bearer credential. The
// credential itself is opaque here; the identity service validates it when
// the handler forwards it upstream.
func RequireAuthorization() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return c.JSON(http.StatusUnauthorized, errorBody{
					Message: "Missing Authorization header",
				})
			}

			return next(c)
		}
	}
}
