package middleware

import (
	"crewbase/internal/service"

	"github.com/labstack/echo/v4"
)

const contextClaimsKey = "auth_claims"

func SetAuthContext(c echo.Context, claims service.Claims) {
	c.Set(contextClaimsKey, claims)
}

func ClaimsFromContext(c echo.Context) (service.Claims, bool) {
	value := c.Get(contextClaimsKey)
	claims, ok := value.(service.Claims)
	return claims, ok
}
