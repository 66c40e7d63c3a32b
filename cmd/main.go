package main

import (
	"net/http"
	"os"
	"time"

	"roomi/api/handler"
	apiMiddleware "roomi/api/middleware"
	"roomi/api/routes"
	"roomi/config"
	"roomi/internal/repository"
	"roomi/internal/service"
	"roomi/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}

	validate := validator.New()

	jwtManager := utils.JWTManager{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL,
	}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	hostelRepo := repository.NewHostelRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	notifier := buildNotifier(cfg, logger)
	passwordHasher := service.BcryptPasswordHasher{}
	clock := service.RealClock{}

	verificationService := service.NewVerificationService(codeRepo, notifier, clock).WithAuditLog(auditRepo)
	authService := service.NewAuthService(
		userRepo,
		auditRepo,
		verificationService,
		passwordHasher,
		service.JWTAccessIssuer{Manager: &jwtManager},
		clock,
	)
	userService := service.NewUserService(userRepo, auditRepo, verificationService, passwordHasher)
	hostelService := service.NewHostelService(hostelRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(userService, validate)
	hostelHandler := handler.NewHostelHandler(hostelService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
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
	router := routes.NewRouter(app, authHandler, userHandler, hostelHandler, authMiddleware)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func buildNotifier(cfg *config.Config, logger *logrus.Logger) service.Notifier {
	if cfg.ResendAPIKey != "" {
		logger.Info("using resend notifier")
		return service.NewResendNotifier(cfg.ResendAPIKey, cfg.MailFrom)
	}
	if cfg.SMTPHost != "" {
		logger.Info("using smtp notifier")
		return service.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}
	logger.Warn("no mail provider configured, verification codes will be logged")
	return service.LogNotifier{Logger: logger}
}
