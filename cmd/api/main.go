package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gucci1909/regis/internal/config"
	"github.com/gucci1909/regis/internal/database"
	"github.com/gucci1909/regis/internal/intake"
	"github.com/gucci1909/regis/internal/jobs"
	"github.com/gucci1909/regis/internal/middleware"
	"github.com/gucci1909/regis/internal/otp"
	"github.com/gucci1909/regis/internal/project"
	"github.com/gucci1909/regis/internal/registration"
	"github.com/gucci1909/regis/pkg/notify"
	"github.com/gucci1909/regis/pkg/storage"
)

func main() {
	envPath := flag.String("env", "", "Path to the .env file")
	mode := flag.String("mode", "development", "Application mode (development, production)")
	flag.Parse()

	cfg, err := config.Load(*envPath, *mode)
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Disconnect(context.Background(), db)

	objectStorage, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	sender, err := buildSender(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize OTP sender", zap.Error(err))
	}

	exposeDetail := !cfg.IsProduction()

	// OTP module
	otpRepo := otp.NewRepository(db)
	otpService := otp.NewService(otpRepo, sender, cfg.OTP, cfg.Mode, logger)
	otpHandler := otp.NewHandler(otpService, exposeDetail)

	// Project catalog
	projectRepo := project.NewRepository(db)
	projectService := project.NewService(projectRepo, logger)
	projectHandler := project.NewHandler(projectService, exposeDetail)

	// Registration + moderation
	fileIntake := intake.New(cfg.Upload)
	registrationRepo := registration.NewRepository(db)
	registrationService := registration.NewService(registrationRepo, objectStorage, logger)
	registrationHandler := registration.NewHandler(registrationService, fileIntake, exposeDetail)

	// Background cleanup
	cleanup := jobs.NewCleanup(otpRepo, cfg.Upload, logger)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("failed to start cleanup job", zap.Error(err))
	}
	defer cleanup.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.Upload.MaxBytes

	rateLimit := middleware.RateLimit(100, time.Minute)

	otpHandler.RegisterRoutes(router.Group("/otp", rateLimit))
	projectHandler.RegisterRoutes(router.Group("/project", rateLimit))
	registrationHandler.RegisterRoutes(router.Group("/register", rateLimit))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", cfg.Server.GetServerAddr()),
		zap.String("mode", string(cfg.Mode)),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

// buildSender picks the OTP delivery channels: SES email (plus SNS SMS when
// enabled) in production, a logging sender in development.
func buildSender(ctx context.Context, cfg *config.Config, logger *zap.Logger) (notify.Sender, error) {
	if !cfg.IsProduction() {
		return notify.NewLogSender(logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, err
	}

	senders := notify.Multi{notify.NewSESSender(awsCfg, cfg.Notify.EmailFrom)}
	if cfg.Notify.SMSEnabled {
		senders = append(senders, notify.NewSNSSender(awsCfg))
	}
	return senders, nil
}
