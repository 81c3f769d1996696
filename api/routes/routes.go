package routes

import (
	"time"

	"crewbase/api/handler"
	"crewbase/api/middleware"
	"crewbase/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/create-password-reset-token", r.Auth.CreatePasswordResetToken, r.LoginRate.Middleware())
	e.POST("/auth/password-reset", r.Auth.PasswordReset, r.AuthRate.Middleware())

	e.POST("/auth/verify-token", r.Auth.VerifyToken, r.AuthMiddleware.RequireAuth)
	e.GET("/auth/get-user", r.Auth.GetUser, r.AuthMiddleware.RequireAuth)
	e.PUT("/auth/update-user", r.Auth.UpdateUser, r.AuthMiddleware.RequireAuth)
	e.PUT("/auth/update-password", r.Auth.UpdatePassword, r.AuthMiddleware.RequireAuth)
	e.GET("/auth/get-workers", r.Auth.GetWorkers, r.AuthMiddleware.RequireAuth,
		middleware.RequireRole(entity.RoleAdmin, entity.RoleWorker))
	e.POST("/auth/add-admin", r.Auth.AddAdmin, r.AuthMiddleware.RequireAuth,
		middleware.RequireRole(entity.RoleAdmin))
}
