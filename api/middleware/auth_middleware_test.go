package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crewbase/internal/entity"
	"crewbase/internal/service"
	"crewbase/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/get-user", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuth(t *testing.T) {
	manager := utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	guard := AuthMiddleware{JWT: &manager}

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("missing header", func(t *testing.T) {
		c, _ := newTestContext(t, "")
		err := guard.RequireAuth(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("not a bearer scheme", func(t *testing.T) {
		c, _ := newTestContext(t, "Basic abc123")
		err := guard.RequireAuth(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		c, _ := newTestContext(t, "Bearer not.a.token")
		err := guard.RequireAuth(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		token, _, err := manager.IssueAccessToken(7, "ana@example.com", int(entity.RoleWorker))
		require.NoError(t, err)

		c, rec := newTestContext(t, "Bearer "+token)
		handlerErr := guard.RequireAuth(func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			require.True(t, ok)
			assert.Equal(t, uint(7), claims.UserID)
			assert.Equal(t, "ana@example.com", claims.Email)
			assert.Equal(t, entity.RoleWorker, claims.Role)
			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, handlerErr)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("claims with unknown role rejected", func(t *testing.T) {
		token, _, err := manager.IssueAccessToken(7, "ana@example.com", 9)
		require.NoError(t, err)

		c, _ := newTestContext(t, "Bearer "+token)
		err = guard.RequireAuth(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func serviceClaims(role int) service.Claims {
	return service.Claims{UserID: 1, Email: "ana@example.com", Role: entity.Role(role)}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	newCtx := func() echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/auth/get-workers", nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("no claims in context", func(t *testing.T) {
		c := newCtx()
		err := RequireRole(entity.RoleAdmin)(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("role outside allow list", func(t *testing.T) {
		c := newCtx()
		SetAuthContext(c, serviceClaims(3))
		err := RequireRole(entity.RoleAdmin, entity.RoleWorker)(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("role in allow list", func(t *testing.T) {
		c := newCtx()
		SetAuthContext(c, serviceClaims(2))
		err := RequireRole(entity.RoleAdmin, entity.RoleWorker)(next)(c)
		require.NoError(t, err)
	})
}
