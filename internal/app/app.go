package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/auth"
	"github.com/rgrams-coder/mmles/internal/config"
	"github.com/rgrams-coder/mmles/internal/database"
	"github.com/rgrams-coder/mmles/internal/email"
	"github.com/rgrams-coder/mmles/internal/events"
	"github.com/rgrams-coder/mmles/internal/handlers"
	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/middleware"
	"github.com/rgrams-coder/mmles/internal/payment"
	"github.com/rgrams-coder/mmles/internal/repositories"
	"github.com/rgrams-coder/mmles/internal/routes"
	"github.com/rgrams-coder/mmles/internal/services"
	"github.com/rgrams-coder/mmles/internal/storage"
	"github.com/rgrams-coder/mmles/internal/validator"
	"github.com/rgrams-coder/mmles/internal/workers"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

const shutdownTimeout = 15 * time.Second

// Deps are the external collaborators of the HTTP application. Run builds the real
// ones from configuration; tests pass fakes.
type Deps struct {
	Gateway   payment.Gateway
	Storage   storage.Storage
	Mailer    email.Provider
	Publisher events.Publisher
	Hasher    *auth.PasswordHasher
}

// Run starts the API and blocks until SIGINT or SIGTERM. Every resource opened on
// the way is released before it returns.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg)
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Debug:        !cfg.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("Database schema migrated")
	}

	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	workers.NewLibraryPaymentWorker(db, repositories.NewUserRepository(), cfg.PendingPaymentTTL()).Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      SetupRouter(cfg, db, deps),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
	return nil
}

func buildDeps(ctx context.Context, cfg *config.Config) (Deps, error) {
	store, err := storage.NewStorage(ctx, storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return Deps{}, err
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var mailer email.Provider = email.NoopProvider{}
	if cfg.Email.Enabled {
		gomailer := email.NewGomailProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    cfg.Email.UseTLS,
		}, email.NewDefaultTemplates())
		if err := gomailer.Validate(); err != nil {
			return Deps{}, err
		}
		mailer = gomailer
	} else {
		logger.Warn("Email disabled, notifications are not mailed")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kp, err := events.NewKafkaPublisher(events.KafkaConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			Username: cfg.Kafka.Username,
			Password: cfg.Kafka.Password,
			UseTLS:   cfg.Kafka.UseTLS,
		})
		if err != nil {
			return Deps{}, err
		}
		publisher = kp
		logger.Info("Kafka publisher initialized", "topic", cfg.Kafka.Topic)
	}

	return Deps{
		Gateway: payment.NewRazorpayClient(payment.RazorpayConfig{
			KeyID:     cfg.Payment.KeyID,
			KeySecret: cfg.Payment.KeySecret,
			BaseURL:   cfg.Payment.BaseURL,
			Timeout:   cfg.PaymentTimeout(),
		}),
		Storage:   store,
		Mailer:    mailer,
		Publisher: publisher,
		Hasher:    auth.NewPasswordHasher(),
	}, nil
}

// SetupRouter wires services, handlers and middlewares into a gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	serviceContainer := initializeServices(cfg, deps, tokens)
	appHandlers := handlers.NewAppHandlers(validator.New(), serviceContainer)

	ginRouter := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(tokens))
	return ginRouter
}

func initializeServices(cfg *config.Config, deps Deps, tokens *auth.TokenManager) *services.ServiceContainer {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewPasswordHasher()
	}

	userRepo := repositories.NewUserRepository()
	orderRepo := repositories.NewPaymentOrderRepository()
	submissionRepo := repositories.NewSubmissionRepository()

	uploadConfig := services.GetDefaultUploadConfig()
	if cfg.Upload.MaxSize > 0 {
		uploadConfig.MaxFileSize = cfg.Upload.MaxSize
	}
	if len(cfg.Upload.AllowedTypes) > 0 {
		uploadConfig.AllowedTypes = cfg.Upload.AllowedTypes
	}

	notificationService := services.NewNotificationService(deps.Mailer, deps.Publisher)
	uploadService := services.NewUploadService(deps.Storage, uploadConfig)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, orderRepo, deps.Gateway, hasher, tokens, notificationService),
		UserService:         services.NewUserService(userRepo, hasher),
		PaymentService:      services.NewPaymentService(userRepo, orderRepo, deps.Gateway, cfg.Payment.Currency, notificationService),
		SubmissionService:   services.NewSubmissionService(userRepo, submissionRepo, uploadService, notificationService),
		UploadService:       uploadService,
		NotificationService: notificationService,
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
