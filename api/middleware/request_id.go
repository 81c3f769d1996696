package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with a uuid, reusing the caller's header value
// when one is already present.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(RequestIDHeader, id)
			c.Set(RequestIDHeader, id)
			return next(c)
		}
	}
}

func RequestIDFromContext(c echo.Context) string {
	id, _ := c.Get(RequestIDHeader).(string)
	return id
}
