package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"crewbase/api/handler"
	apiMiddleware "crewbase/api/middleware"
	"crewbase/api/routes"
	"crewbase/config"
	"crewbase/internal/entity"
	"crewbase/internal/repository"
	"crewbase/internal/service"
	"crewbase/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	db := config.ConnectionDb()
	validate := validator.New()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := db.AutoMigrate(&entity.User{}, &entity.AuditLog{}); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	accessSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(accessSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}
	issuer := os.Getenv("JWT_ISSUER")

	tokenTTL := 12 * time.Hour
	if hours, err := strconv.Atoi(os.Getenv("JWT_TTL")); err == nil && hours > 0 {
		tokenTTL = time.Duration(hours) * time.Hour
	}

	jwtManager := utils.JWTManager{
		Secret:   accessSecret,
		Issuer:   issuer,
		TokenTTL: tokenTTL,
	}

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	emailSender := service.NewResendEmailSender(os.Getenv("RESEND_API_KEY"), os.Getenv("MAIL_FROM"))

	accountService := service.NewAccountService(
		userRepo,
		auditRepo,
		emailSender,
		service.BcryptPasswordHasher{},
		service.JWTAccessIssuer{Manager: &jwtManager},
		service.HexResetTokenGenerator{},
		service.DefaultCatalog(),
		service.RealClock{},
		service.AccountConfig{
			AccessTokenTTL: tokenTTL,
			ResetTokenTTL:  time.Hour,
		},
	)

	authHandler := handler.NewAuthHandler(accountService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(apiMiddleware.RequestID())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status":     v.Status,
				"method":     v.Method,
				"uri":        v.URI,
				"ip":         v.RemoteIP,
				"request_id": apiMiddleware.RequestIDFromContext(c),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	authMiddleware := apiMiddleware.AuthMiddleware{JWT: &jwtManager}
	router := routes.NewRouter(app, authHandler, authMiddleware)
	router.RegisterRoutes()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", addr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
