package middleware

import (
	"net/http"
	"strings"

	"crewbase/internal/entity"
	"crewbase/internal/service"
	"crewbase/internal/utils"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the request gate for protected routes: no token, a bad
// signature, and an elapsed expiry all reject the same way. Handlers behind
// it only ever see claims that passed verification.
type AuthMiddleware struct {
	JWT *utils.JWTManager
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		claims, err := m.JWT.ParseAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		role := entity.Role(claims.Role)
		if claims.UserID == 0 || !role.Valid() {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		SetAuthContext(c, service.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   role,
		})
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
